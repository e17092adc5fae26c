package override

import (
	"github.com/shuaibahmad12/mirai/internal/override/repository"
	"github.com/shuaibahmad12/mirai/internal/override/service"
	"go.uber.org/fx"
)

var Module = fx.Module("override.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
