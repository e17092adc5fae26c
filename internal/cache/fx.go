package cache

import (
	"github.com/shuaibahmad12/mirai/internal/admission/lock"
	"go.uber.org/fx"
)

var Module = fx.Module("cache",
	fx.Provide(NewRedisClient),
	fx.Provide(lock.NewLocker),
)
