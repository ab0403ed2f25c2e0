package migration

import (
	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&chefdomain.Chef{},
		&menudomain.Menu{},
		&menudomain.MenuItem{},
		&subscriptiondomain.Subscription{},
		&orderdomain.Order{},
		&ratingdomain.Rating{},
		&auditdomain.AuditLog{},
	}
}

// AutoMigrate builds the schema from the models. Used for SQLite and MySQL,
// where the embedded Postgres migrations do not apply.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}
