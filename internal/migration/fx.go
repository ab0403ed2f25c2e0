package migration

import (
	"context"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, authSvc authdomain.Service, log *zap.Logger) error {
		if cfg.DBMigrate {
			if err := Apply(conn, cfg.DBType); err != nil {
				return err
			}
		}
		return seed.EnsureSuperAdmin(context.Background(), authSvc, cfg, log)
	}),
)

// Apply runs the embedded SQL migrations on Postgres and falls back to gorm
// AutoMigrate for the other dialects.
func Apply(conn *gorm.DB, dbType string) error {
	if dbType != "postgres" {
		return AutoMigrate(conn)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}
