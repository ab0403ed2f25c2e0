package service

import (
	"testing"
	"time"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekMenu(start time.Time, days [][2]string) *menudomain.Menu {
	menu := &menudomain.Menu{ID: 10, ChefID: 20, StartDate: start}
	for i, d := range days {
		menu.Items = append(menu.Items, menudomain.MenuItem{
			Position: i,
			Date:     start.AddDate(0, 0, i),
			Midi:     d[0],
			Soir:     d[1],
		})
	}
	return menu
}

func fullWeek() [][2]string {
	days := make([][2]string, 7)
	for i := range days {
		days[i] = [2]string{"Fufu", "Ablo"}
	}
	return days
}

func idGen() func() snowflake.ID {
	var next snowflake.ID
	return func() snowflake.ID {
		next++
		return next
	}
}

func TestPlanOrdersFormuleCoverage(t *testing.T) {
	meals := config.DefaultMealsConfig()
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	recipient := &authdomain.User{ID: 30}

	fiveMidi := fullWeek()
	fiveMidi[2][0] = ""
	fiveMidi[5][0] = "   "

	cases := []struct {
		name    string
		formule domain.Formule
		days    [][2]string
		want    int
	}{
		{"complet full week", domain.FormuleComplet, fullWeek(), 14},
		{"midi full week", domain.FormuleMidi, fullWeek(), 7},
		{"soir full week", domain.FormuleSoir, fullWeek(), 7},
		{"midi with two blank days", domain.FormuleMidi, fiveMidi, 5},
		{"complet with two blank middays", domain.FormuleComplet, fiveMidi, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &domain.Subscription{ID: 1, UserID: 30, ChefID: 20, Formule: tc.formule}
			orders := planOrders(sub, weekMenu(start, tc.days), recipient, meals, idGen())
			assert.Len(t, orders, tc.want)
		})
	}
}

func TestPlanOrdersAnchorsAndCopiesDish(t *testing.T) {
	meals := config.DefaultMealsConfig()
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{ID: 1, UserID: 30, ChefID: 20, Formule: domain.FormuleComplet}
	menu := weekMenu(start, [][2]string{{"Riz", ""}, {"", "Poisson"}})

	orders := planOrders(sub, menu, &authdomain.User{ID: 30}, meals, idGen())
	require.Len(t, orders, 2)

	assert.Equal(t, orderdomain.MomentMidi, orders[0].Moment)
	assert.Equal(t, "Riz", orders[0].Repas)
	assert.True(t, orders[0].Date.Equal(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, orderdomain.MomentSoir, orders[1].Moment)
	assert.Equal(t, "Poisson", orders[1].Repas)
	assert.True(t, orders[1].Date.Equal(time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC)))

	for _, o := range orders {
		assert.Equal(t, orderdomain.StatusPending, o.Statut)
		assert.Equal(t, sub.ID, o.SubscriptionID)
		assert.Equal(t, sub.ChefID, o.ChefID)
		assert.Equal(t, time.UTC, o.Date.Location())
	}
}

func TestPlanOrdersKeepsDishVerbatim(t *testing.T) {
	meals := config.DefaultMealsConfig()
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{ID: 1, Formule: domain.FormuleMidi}
	menu := weekMenu(start, [][2]string{{"  Riz gras ", ""}})

	orders := planOrders(sub, menu, &authdomain.User{}, meals, idGen())
	require.Len(t, orders, 1)
	assert.Equal(t, "  Riz gras ", orders[0].Repas)
}

func TestPlanOrdersUsesConfiguredTimezone(t *testing.T) {
	meals := config.DefaultMealsConfig()
	meals.Timezone = "Africa/Lagos"
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	start := time.Date(2025, 6, 2, 12, 0, 0, 0, loc)
	sub := &domain.Subscription{ID: 1, Formule: domain.FormuleSoir}
	orders := planOrders(sub, weekMenu(start, [][2]string{{"", "Ablo"}}), &authdomain.User{}, meals, idGen())

	require.Len(t, orders, 1)
	assert.True(t, orders[0].Date.Equal(time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)))
}

func TestDeliveryPointSnapshot(t *testing.T) {
	assert.Equal(t, orderdomain.DeliveryPoint{}, deliveryPoint(authdomain.PickupPoint{}))

	lat, lng := 6.13, 1.22
	point := deliveryPoint(authdomain.PickupPoint{Latitude: &lat, Longitude: &lng, Address: "Tokoin"})
	assert.Equal(t, "Tokoin", point.Address)
	require.NotNil(t, point.Latitude)
	assert.Equal(t, 6.13, *point.Latitude)
}
