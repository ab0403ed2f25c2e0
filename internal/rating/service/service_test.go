package service

import (
	"context"
	"testing"
	"time"

	auditrepository "github.com/UknowEdy/chefetoile-backend/internal/audit/repository"
	auditservice "github.com/UknowEdy/chefetoile-backend/internal/audit/service"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	orderrepository "github.com/UknowEdy/chefetoile-backend/internal/order/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/rating/repository"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/testutil"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	*testutil.Fixture
	svc  domain.Service
	chef *chefdomain.Chef
	sub  *subscriptiondomain.Subscription
	day  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := testutil.New(t)
	svc := NewService(ServiceParam{
		DB:    f.DB,
		Log:   zap.NewNop(),
		GenID: f.Node,
		Clock: f.Clock,
		Repo:  repository.Provide(),
		Orders: orderrepository.Provide(),
		Audit: auditservice.NewService(auditservice.Params{
			DB:    f.DB,
			Log:   zap.NewNop(),
			GenID: f.Node,
			Clock: f.Clock,
			Repo:  auditrepository.Provide(),
		}),
		Metrics: metrics.NewNoop(),
	})

	_, chef := f.Chef(t, "Ama")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 5, 1), [][2]string{{"Riz", "Pâte"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleMidi, subscriptiondomain.StatusActive)
	return &fixture{Fixture: f, svc: svc, chef: chef, sub: sub}
}

// order adds an order of the fixture client on a fresh day.
func (f *fixture) order(t *testing.T, status orderdomain.Status) *orderdomain.Order {
	t.Helper()
	f.day++
	return f.Order(t, f.sub, f.Day(2025, 5, f.day), orderdomain.MomentMidi, status)
}

func (f *fixture) storedChef(t *testing.T) chefdomain.Chef {
	t.Helper()
	var chef chefdomain.Chef
	require.NoError(t, f.DB.First(&chef, "id = ?", f.chef.ID).Error)
	return chef
}

func (f *fixture) submit(t *testing.T, orderID snowflake.ID, scores map[string]any) (*domain.Rating, error) {
	t.Helper()
	return f.svc.Submit(context.Background(), domain.SubmitRequest{
		ClientID: f.sub.UserID,
		OrderID:  orderID,
		Scores:   scores,
		Comment:  "  Très bon  ",
	})
}

func uniform(score float64) map[string]any {
	return map[string]any{
		"qualiteNourriture": score,
		"ponctualite":       score,
		"diversiteMenu":     score,
		"communication":     score,
		"presentation":      score,
	}
}

func TestSubmitComputesMeanAndAggregate(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)

	rating, err := f.submit(t, order.ID, map[string]any{"a": 5.0, "b": 4.0, "c": 5.0, "d": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.MoyenneGlobale)
	assert.Equal(t, "Très bon", rating.Commentaire)
	assert.Equal(t, f.chef.ID, rating.ChefID)

	var stored orderdomain.Order
	require.NoError(t, f.DB.First(&stored, "id = ?", order.ID).Error)
	require.NotNil(t, stored.RatingID)
	assert.Equal(t, rating.ID, *stored.RatingID)

	chef := f.storedChef(t)
	assert.Equal(t, 4.5, chef.Rating)
	assert.Equal(t, int64(1), chef.TotalRatings)
}

func TestSubmitRoundsToTwoDecimals(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)

	rating, err := f.submit(t, order.ID, map[string]any{"a": 5, "b": 5, "c": 4})
	require.NoError(t, err)
	assert.Equal(t, 4.67, rating.MoyenneGlobale)
}

func TestAggregateIsFullRecompute(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.submit(t, f.order(t, orderdomain.StatusDelivered).ID, uniform(4))
		require.NoError(t, err)
	}
	chef := f.storedChef(t)
	assert.Equal(t, 4.0, chef.Rating)
	assert.Equal(t, int64(3), chef.TotalRatings)

	_, err := f.submit(t, f.order(t, orderdomain.StatusDelivered).ID, uniform(5))
	require.NoError(t, err)

	chef = f.storedChef(t)
	assert.Equal(t, 4.25, chef.Rating)
	assert.Equal(t, int64(4), chef.TotalRatings)
}

func TestSubmitRequiresDeliveredOrder(t *testing.T) {
	f := newFixture(t)
	for _, status := range []orderdomain.Status{
		orderdomain.StatusPending,
		orderdomain.StatusPreparing,
		orderdomain.StatusReady,
		orderdomain.StatusDelivering,
		orderdomain.StatusCancelled,
	} {
		order := f.order(t, status)
		_, err := f.submit(t, order.ID, uniform(5))
		assert.ErrorIs(t, err, domain.ErrOrderNotDelivered, "status %s", status)
		assert.ErrorContains(t, err, string(status))
	}

	chef := f.storedChef(t)
	assert.Zero(t, chef.TotalRatings)
}

func TestSubmitTwiceLeavesAggregateUnchanged(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)

	_, err := f.submit(t, order.ID, uniform(3))
	require.NoError(t, err)
	before := f.storedChef(t)

	_, err = f.submit(t, order.ID, uniform(5))
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)

	after := f.storedChef(t)
	assert.Equal(t, before.Rating, after.Rating)
	assert.Equal(t, before.TotalRatings, after.TotalRatings)

	var count int64
	require.NoError(t, f.DB.Model(&domain.Rating{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitDetectsRatingRowWithoutBackReference(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)
	require.NoError(t, f.DB.Create(&domain.Rating{
		ID:             f.Node.Generate(),
		UserID:         f.sub.UserID,
		ChefID:         f.chef.ID,
		OrderID:        order.ID,
		Notes:          map[string]any{"a": 4.0},
		MoyenneGlobale: 4,
	}).Error)

	_, err := f.submit(t, order.ID, uniform(5))
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
}

func TestSubmitNoValidScores(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)

	_, err := f.submit(t, order.ID, map[string]any{"qualiteNourriture": "excellent"})
	assert.ErrorIs(t, err, domain.ErrNoValidScores)

	var stored orderdomain.Order
	require.NoError(t, f.DB.First(&stored, "id = ?", order.ID).Error)
	assert.Nil(t, stored.RatingID)
}

func TestSubmitOtherClientsOrderIsNotFound(t *testing.T) {
	f := newFixture(t)
	order := f.order(t, orderdomain.StatusDelivered)
	stranger := f.Client(t, "Kafui")

	_, err := f.svc.Submit(context.Background(), domain.SubmitRequest{
		ClientID: stranger.ID,
		OrderID:  order.ID,
		Scores:   uniform(5),
	})
	assert.ErrorIs(t, err, orderdomain.ErrOrderNotFound)

	_, err = f.submit(t, f.Node.Generate(), uniform(5))
	assert.ErrorIs(t, err, orderdomain.ErrOrderNotFound)
}

func TestRecomputeHealsStaleAggregate(t *testing.T) {
	f := newFixture(t)
	_, err := f.submit(t, f.order(t, orderdomain.StatusDelivered).ID, uniform(4))
	require.NoError(t, err)
	require.NoError(t, f.DB.Model(&chefdomain.Chef{}).Where("id = ?", f.chef.ID).
		UpdateColumns(map[string]any{"rating": 1.0, "total_ratings": 42}).Error)

	agg, err := f.svc.RecomputeChef(context.Background(), f.chef.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.Rating)
	assert.Equal(t, int64(1), agg.TotalRatings)

	chef := f.storedChef(t)
	assert.Equal(t, 4.0, chef.Rating)
	assert.Equal(t, int64(1), chef.TotalRatings)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	first, err := f.submit(t, f.order(t, orderdomain.StatusDelivered).ID, uniform(4))
	require.NoError(t, err)
	f.Clock.Advance(time.Minute)
	second, err := f.submit(t, f.order(t, orderdomain.StatusDelivered).ID, uniform(5))
	require.NoError(t, err)

	byChef, err := f.svc.ListByChef(context.Background(), f.chef.ID)
	require.NoError(t, err)
	require.Len(t, byChef, 2)
	assert.Equal(t, second.ID, byChef[0].ID)
	assert.Equal(t, first.ID, byChef[1].ID)

	mine, err := f.svc.ListMine(context.Background(), f.sub.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
