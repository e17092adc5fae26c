package course

import (
	"github.com/shuaibahmad12/mirai/internal/course/repository"
	"github.com/shuaibahmad12/mirai/internal/course/service"
	"go.uber.org/fx"
)

var Module = fx.Module("course.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
