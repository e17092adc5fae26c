package receipt

import (
	"github.com/shuaibahmad12/mirai/internal/receipt/repository"
	"github.com/shuaibahmad12/mirai/internal/receipt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
