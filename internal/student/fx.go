package student

import (
	"github.com/shuaibahmad12/mirai/internal/student/repository"
	"github.com/shuaibahmad12/mirai/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
