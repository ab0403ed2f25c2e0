// Package testutil seeds an in-memory database for service tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/migration"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Epoch is the default fake "now": Sunday 1 June 2025, 08:00 UTC.
var Epoch = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type Fixture struct {
	DB    *gorm.DB
	Node  *snowflake.Node
	Clock *clock.FakeClock
	Meals *config.MealsConfigHolder

	seq int
}

func New(t testing.TB) *Fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Fixture{
		DB:    conn,
		Node:  node,
		Clock: clock.NewFakeClock(Epoch),
		Meals: config.NewStaticMealsConfigHolder(config.DefaultMealsConfig()),
	}
}

// Day returns the given calendar day at the midday anchor in the meals
// timezone.
func (f *Fixture) Day(year int, month time.Month, day int) time.Time {
	cfg := f.Meals.Get()
	h, m := cfg.MidiClock()
	return time.Date(year, month, day, h, m, 0, 0, cfg.Location())
}

func (f *Fixture) User(t testing.TB, role authdomain.Role, name string) *authdomain.User {
	t.Helper()
	f.seq++
	user := &authdomain.User{
		ID:        f.Node.Generate(),
		Nom:       name,
		Prenom:    name,
		Email:     fmt.Sprintf("user%d@example.com", f.seq),
		Telephone: "+22890000000",
		Role:      role,
		Matricule: fmt.Sprintf("%s-TST-%05d", role[:2], 10000+f.seq),
		Statut:    authdomain.UserStatusActive,
	}
	require.NoError(t, f.DB.Create(user).Error)
	return user
}

// Client creates a CLIENT with a pickup point.
func (f *Fixture) Client(t testing.TB, name string) *authdomain.User {
	t.Helper()
	user := f.User(t, authdomain.RoleClient, name)
	lat, lng := 6.1319, 1.2228
	user.PickupPoint = authdomain.PickupPoint{Latitude: &lat, Longitude: &lng, Address: "Bè Kpota"}
	require.NoError(t, f.DB.Model(user).Updates(map[string]any{
		"pickup_latitude":  lat,
		"pickup_longitude": lng,
		"pickup_address":   "Bè Kpota",
	}).Error)
	return user
}

func (f *Fixture) Chef(t testing.TB, name string) (*authdomain.User, *chefdomain.Chef) {
	t.Helper()
	user := f.User(t, authdomain.RoleChef, name)
	chef := &chefdomain.Chef{
		ID:       f.Node.Generate(),
		UserID:   user.ID,
		Name:     name,
		Slug:     fmt.Sprintf("chef-%d", f.seq),
		Phone:    user.Telephone,
		Email:    user.Email,
		Quartier: "Lomé",
		Settings: datatypes.NewJSONType(chefdomain.DefaultSettings(f.Meals.Get().ChefDefaults)),
		Statut:   chefdomain.StatusActive,
	}
	require.NoError(t, f.DB.Create(chef).Error)
	return user, chef
}

// Menu stores an active menu starting at start. Each entry holds the midday
// and evening dish of one day.
func (f *Fixture) Menu(t testing.TB, chefID snowflake.ID, start time.Time, days [][2]string) *menudomain.Menu {
	t.Helper()
	menu := &menudomain.Menu{
		ID:        f.Node.Generate(),
		ChefID:    chefID,
		Title:     "Semaine test",
		StartDate: start.UTC(),
		EndDate:   start.AddDate(0, 0, 6).UTC(),
		IsActive:  true,
	}
	for i, d := range days {
		menu.Items = append(menu.Items, menudomain.MenuItem{
			ID:       f.Node.Generate(),
			MenuID:   menu.ID,
			Position: i,
			Date:     start.AddDate(0, 0, i).UTC(),
			Midi:     d[0],
			Soir:     d[1],
		})
	}
	require.NoError(t, f.DB.Create(menu).Error)
	return menu
}

func (f *Fixture) Subscription(t testing.TB, userID snowflake.ID, menu *menudomain.Menu, formule subscriptiondomain.Formule, status subscriptiondomain.Status) *subscriptiondomain.Subscription {
	t.Helper()
	sub := &subscriptiondomain.Subscription{
		ID:        f.Node.Generate(),
		UserID:    userID,
		ChefID:    menu.ChefID,
		MenuID:    menu.ID,
		Formule:   formule,
		PrixTotal: 14000,
		DateDebut: menu.StartDate,
		DateFin:   menu.EndDate,
		Statut:    status,
	}
	require.NoError(t, f.DB.Create(sub).Error)
	return sub
}

// Order stores a single order of sub on date at moment.
func (f *Fixture) Order(t testing.TB, sub *subscriptiondomain.Subscription, date time.Time, moment orderdomain.Moment, status orderdomain.Status) *orderdomain.Order {
	t.Helper()
	order := &orderdomain.Order{
		ID:             f.Node.Generate(),
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		ChefID:         sub.ChefID,
		Date:           date.UTC(),
		Moment:         moment,
		Repas:          "Riz sauce arachide",
		Statut:         status,
	}
	require.NoError(t, f.DB.Create(order).Error)
	return order
}
