package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/config"
	"github.com/shuaibahmad12/mirai/internal/logger"
	"github.com/shuaibahmad12/mirai/internal/migration"
	"github.com/shuaibahmad12/mirai/internal/seed"
	"github.com/shuaibahmad12/mirai/internal/server"
	"github.com/shuaibahmad12/mirai/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
