package main

import (
	"fmt"

	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/migration"
	"github.com/UknowEdy/chefetoile-backend/internal/observability"
	"github.com/UknowEdy/chefetoile-backend/internal/platformmetrics"
	"github.com/UknowEdy/chefetoile-backend/internal/scheduler"
	"github.com/UknowEdy/chefetoile-backend/internal/server"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP API and every domain service behind it
		server.Module,

		// Background work
		platformmetrics.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.NodeID, err)
	}
	return node, nil
}
