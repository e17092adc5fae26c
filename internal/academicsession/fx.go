package academicsession

import (
	"github.com/shuaibahmad12/mirai/internal/academicsession/repository"
	"github.com/shuaibahmad12/mirai/internal/academicsession/service"
	"go.uber.org/fx"
)

var Module = fx.Module("academicsession.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
