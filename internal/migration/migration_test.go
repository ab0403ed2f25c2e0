package migration

import (
	"io/fs"
	"testing"

	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	assert.True(t, names["000001_init.up.sql"])
	assert.True(t, names["000001_init.down.sql"])
}

func TestApplyAutoMigratesOutsidePostgres(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, Apply(conn, "sqlite"))

	for _, table := range []string{"users", "chefs", "menus", "menu_items", "subscriptions", "orders", "ratings", "audit_logs"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
	assert.True(t, conn.Migrator().HasIndex("orders", "idx_orders_subscription_slot"))
}
