package main

import (
	"fmt"

	"github.com/UknowEdy/chefetoile-backend/internal/admin"
	"github.com/UknowEdy/chefetoile-backend/internal/audit"
	"github.com/UknowEdy/chefetoile-backend/internal/auth"
	"github.com/UknowEdy/chefetoile-backend/internal/chef"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/menu"
	"github.com/UknowEdy/chefetoile-backend/internal/observability"
	"github.com/UknowEdy/chefetoile-backend/internal/order"
	"github.com/UknowEdy/chefetoile-backend/internal/platformmetrics"
	"github.com/UknowEdy/chefetoile-backend/internal/providers"
	"github.com/UknowEdy/chefetoile-backend/internal/ratelimit"
	"github.com/UknowEdy/chefetoile-backend/internal/rating"
	"github.com/UknowEdy/chefetoile-backend/internal/scheduler"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// The scheduler worker runs the lifecycle jobs without serving HTTP, so the
// API replicas can run with SCHEDULER_ENABLED=false.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Domain services required by scheduler
		scheduler.Module,
		platformmetrics.Module,
		subscription.Module,
		order.Module,
		rating.Module,
		admin.Module,

		// Transitive dependencies
		auth.Module,
		chef.Module,
		menu.Module,
		audit.Module,
		providers.Module,
		ratelimit.Module,

		// No server module!
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
