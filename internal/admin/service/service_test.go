package service

import (
	"context"
	"testing"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	auditrepository "github.com/UknowEdy/chefetoile-backend/internal/audit/repository"
	auditservice "github.com/UknowEdy/chefetoile-backend/internal/audit/service"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	authrepository "github.com/UknowEdy/chefetoile-backend/internal/auth/repository"
	authservice "github.com/UknowEdy/chefetoile-backend/internal/auth/service"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/token"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	chefrepository "github.com/UknowEdy/chefetoile-backend/internal/chef/repository"
	chefservice "github.com/UknowEdy/chefetoile-backend/internal/chef/service"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	menurepository "github.com/UknowEdy/chefetoile-backend/internal/menu/repository"
	menuservice "github.com/UknowEdy/chefetoile-backend/internal/menu/service"
	"github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	orderrepository "github.com/UknowEdy/chefetoile-backend/internal/order/repository"
	orderservice "github.com/UknowEdy/chefetoile-backend/internal/order/service"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	ratingrepository "github.com/UknowEdy/chefetoile-backend/internal/rating/repository"
	ratingservice "github.com/UknowEdy/chefetoile-backend/internal/rating/service"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	subscriptionrepository "github.com/UknowEdy/chefetoile-backend/internal/subscription/repository"
	subscriptionservice "github.com/UknowEdy/chefetoile-backend/internal/subscription/service"
	"github.com/UknowEdy/chefetoile-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopEmail struct{}

func (nopEmail) Send(context.Context, []string, string, string) error { return nil }

func (nopEmail) SendTemplate(context.Context, []string, string, map[string]any) error { return nil }

type fixture struct {
	*testutil.Fixture
	svc   domain.Service
	audit auditdomain.Service
	admin authdomain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := testutil.New(t)
	log := zap.NewNop()

	audit := auditservice.NewService(auditservice.Params{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock, Repo: auditrepository.Provide(),
	})
	chefs := chefservice.NewService(chefservice.ServiceParam{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock, Meals: f.Meals, Repo: chefrepository.Provide(),
	})
	cfg := config.Config{AppName: "chefetoile", AuthJWTSecret: "test-secret", AuthJWTExpire: time.Hour}
	auth := authservice.NewService(authservice.ServiceParam{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock, Config: cfg,
		Repo: authrepository.Provide(), Chefs: chefs,
		Issuer: token.NewIssuer(cfg, f.Clock), Email: nopEmail{},
	})
	menus := menuservice.NewService(menuservice.ServiceParam{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock, Meals: f.Meals,
		Repo: menurepository.Provide(), Chefs: chefs,
	})
	subscriptions := subscriptionservice.NewService(subscriptionservice.ServiceParam{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock, Meals: f.Meals,
		Repo: subscriptionrepository.Provide(), Users: authrepository.Provide(),
		Chefs: chefrepository.Provide(), Menus: menurepository.Provide(),
		Audit: audit, Email: nopEmail{}, Metrics: metrics.NewNoop(),
	})
	orders := orderservice.NewService(orderservice.ServiceParam{
		DB: f.DB, Log: log, Clock: f.Clock, Meals: f.Meals,
		Repo: orderrepository.Provide(), Chefs: chefrepository.Provide(),
	})
	ratings := ratingservice.NewService(ratingservice.ServiceParam{
		DB: f.DB, Log: log, GenID: f.Node, Clock: f.Clock,
		Repo: ratingrepository.Provide(), Orders: orderrepository.Provide(),
		Audit: audit, Metrics: metrics.NewNoop(),
	})

	svc := NewService(Params{
		DB: f.DB, Log: log,
		Auth: auth, Chefs: chefs, Menus: menus, Subscriptions: subscriptions,
		Orders: orders, Ratings: ratings, Audit: audit,
	})
	admin := f.User(t, authdomain.RoleAdmin, "Yao")
	return &fixture{
		Fixture: f,
		svc:     svc,
		audit:   audit,
		admin:   authdomain.Actor{Role: authdomain.RoleAdmin, UserID: admin.ID},
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	_, ama := f.Chef(t, "Ama")
	_, kossi := f.Chef(t, "Kossi")
	require.NoError(t, f.DB.Model(&chefdomain.Chef{}).Where("id = ?", kossi.ID).
		Updates(map[string]any{"is_suspended": true, "statut": chefdomain.StatusSuspended}).Error)

	afi := f.Client(t, "Afi")
	f.Client(t, "Kafui")
	today := f.Day(2025, 6, 1)
	menu := f.Menu(t, ama.ID, today, [][2]string{{"Riz", "Pâte"}})
	sub := f.Subscription(t, afi.ID, menu, subscriptiondomain.FormuleMidi, subscriptiondomain.StatusActive)
	f.Subscription(t, afi.ID, menu, subscriptiondomain.FormuleSoir, subscriptiondomain.StatusPendingValidation)
	f.Order(t, sub, today, orderdomain.MomentMidi, orderdomain.StatusPending)
	f.Order(t, sub, f.Day(2025, 6, 2), orderdomain.MomentMidi, orderdomain.StatusPending)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Stats{
		Chefs:               2,
		ActiveChefs:         1,
		SuspendedChefs:      1,
		Clients:             2,
		ActiveMenus:         1,
		ActiveSubscriptions: 1,
		OrdersToday:         1,
	}, stats)
}

func TestSetChefSuspendedIsAudited(t *testing.T) {
	f := newFixture(t)
	_, chef := f.Chef(t, "Ama")

	updated, err := f.svc.SetChefSuspended(context.Background(), domain.SuspendRequest{
		Actor: f.admin, ChefID: chef.ID, Suspended: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsSuspended)
	assert.Equal(t, chefdomain.StatusSuspended, updated.Statut)

	updated, err = f.svc.SetChefSuspended(context.Background(), domain.SuspendRequest{
		Actor: f.admin, ChefID: chef.ID, Suspended: false,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsSuspended)

	var actions []string
	require.NoError(t, f.DB.Model(&auditdomain.AuditLog{}).Order("created_at ASC").Pluck("action", &actions).Error)
	assert.Equal(t, []string{auditdomain.ActionChefSuspended, auditdomain.ActionChefReactivated}, actions)
}

func TestSetChefSuspendedRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")

	_, err := f.svc.SetChefSuspended(context.Background(), domain.SuspendRequest{
		Actor:     authdomain.Actor{Role: authdomain.RoleChef, UserID: chefUser.ID},
		ChefID:    chef.ID,
		Suspended: true,
	})
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestRecomputeChefRating(t *testing.T) {
	f := newFixture(t)
	_, chef := f.Chef(t, "Ama")
	afi := f.Client(t, "Afi")
	for _, score := range []float64{3, 4, 5} {
		require.NoError(t, f.DB.Create(&ratingdomain.Rating{
			ID:             f.Node.Generate(),
			UserID:         afi.ID,
			ChefID:         chef.ID,
			OrderID:        f.Node.Generate(),
			Notes:          map[string]any{"qualiteNourriture": score},
			MoyenneGlobale: score,
			CreatedAt:      f.Clock.Now(),
		}).Error)
	}

	agg, err := f.svc.RecomputeChefRating(context.Background(), f.admin, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.Rating)
	assert.Equal(t, int64(3), agg.TotalRatings)

	_, err = f.svc.RecomputeChefRating(context.Background(), f.admin, f.Node.Generate())
	assert.ErrorIs(t, err, chefdomain.ErrChefNotFound)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	_, chef := f.Chef(t, "Ama")
	f.Client(t, "Afi")
	f.Menu(t, chef.ID, f.Day(2025, 6, 2), [][2]string{{"Riz", ""}})

	chefs, err := f.svc.ListChefs(context.Background())
	require.NoError(t, err)
	assert.Len(t, chefs, 1)

	clients, err := f.svc.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, authdomain.RoleClient, clients[0].Role)

	menus, err := f.svc.ListMenus(context.Background())
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "Semaine test", menus[0].Title)
}
