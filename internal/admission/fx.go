package admission

import (
	"github.com/shuaibahmad12/mirai/internal/admission/repository"
	"github.com/shuaibahmad12/mirai/internal/admission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("admission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
