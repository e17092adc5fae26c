package college

import (
	"github.com/shuaibahmad12/mirai/internal/college/repository"
	"github.com/shuaibahmad12/mirai/internal/college/service"
	"go.uber.org/fx"
)

var Module = fx.Module("college.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
