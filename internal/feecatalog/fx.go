package feecatalog

import (
	"github.com/shuaibahmad12/mirai/internal/feecatalog/repository"
	"github.com/shuaibahmad12/mirai/internal/feecatalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feecatalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
