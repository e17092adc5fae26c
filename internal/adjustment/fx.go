package adjustment

import (
	"github.com/shuaibahmad12/mirai/internal/adjustment/repository"
	"github.com/shuaibahmad12/mirai/internal/adjustment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adjustment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
