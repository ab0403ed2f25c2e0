package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	chefrepository "github.com/UknowEdy/chefetoile-backend/internal/chef/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/order/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/providers/pdf"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePDF struct {
	sheets []pdf.DeliverySheet
}

func (f *fakePDF) GenerateDeliverySheet(_ context.Context, sheet pdf.DeliverySheet) (io.Reader, error) {
	f.sheets = append(f.sheets, sheet)
	return bytes.NewReader([]byte("%PDF")), nil
}

type fixture struct {
	*testutil.Fixture
	svc domain.Service
	pdf *fakePDF
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := testutil.New(t)
	sheets := &fakePDF{}
	svc := NewService(ServiceParam{
		DB:    f.DB,
		Log:   zap.NewNop(),
		Clock: f.Clock,
		Meals: f.Meals,
		Repo:  repository.Provide(),
		Chefs: chefrepository.Provide(),
		PDF:   sheets,
	})
	return &fixture{Fixture: f, svc: svc, pdf: sheets}
}

func TestUpdateStatusWalksDeliveryFlow(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 6, 2), [][2]string{{"Riz", "Pâte"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleMidi, subscriptiondomain.StatusActive)
	order := f.Order(t, sub, f.Day(2025, 6, 2), domain.MomentMidi, domain.StatusPending)

	livreur := f.Node.Generate().String()
	steps := []domain.Status{domain.StatusPreparing, domain.StatusReady, domain.StatusDelivering, domain.StatusDelivered}
	var updated *domain.Order
	for _, step := range steps {
		req := domain.UpdateStatusRequest{Statut: string(step)}
		if step == domain.StatusDelivering {
			req.LivreurID = &livreur
		}
		var err error
		updated, err = f.svc.UpdateStatus(context.Background(), chefUser.ID, order.ID, req)
		require.NoError(t, err, "step %s", step)
		assert.Equal(t, step, updated.Statut)
	}

	require.NotNil(t, updated.DateLivraison)
	assert.True(t, updated.DateLivraison.Equal(testutil.Epoch))
	require.NotNil(t, updated.LivreurID)
	assert.Equal(t, livreur, updated.LivreurID.String())

	_, err := f.svc.UpdateStatus(context.Background(), chefUser.ID, order.ID, domain.UpdateStatusRequest{Statut: "CANCELLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusRejectsSkipsAndStrangers(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")
	otherUser, _ := f.Chef(t, "Kofi")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 6, 2), [][2]string{{"Riz", "Pâte"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleMidi, subscriptiondomain.StatusActive)
	order := f.Order(t, sub, f.Day(2025, 6, 2), domain.MomentMidi, domain.StatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), chefUser.ID, order.ID, domain.UpdateStatusRequest{Statut: "DELIVERED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(context.Background(), otherUser.ID, order.ID, domain.UpdateStatusRequest{Statut: "PREPARING"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.UpdateStatus(context.Background(), chefUser.ID, order.ID, domain.UpdateStatusRequest{Statut: "EATEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(context.Background(), chefUser.ID, f.Node.Generate(), domain.UpdateStatusRequest{Statut: "PREPARING"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	cancelled, err := f.svc.UpdateStatus(context.Background(), chefUser.ID, order.ID, domain.UpdateStatusRequest{Statut: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Statut)
	assert.Nil(t, cancelled.DateLivraison)
}

func TestListForChefFilters(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 6, 2), [][2]string{{"Riz", "Pâte"}, {"Fufu", "Ablo"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleComplet, subscriptiondomain.StatusActive)

	monday := f.Day(2025, 6, 2)
	tuesday := f.Day(2025, 6, 3)
	f.Order(t, sub, monday, domain.MomentMidi, domain.StatusPending)
	f.Order(t, sub, monday.Add(7*time.Hour), domain.MomentSoir, domain.StatusPending)
	f.Order(t, sub, tuesday, domain.MomentMidi, domain.StatusPending)

	all, err := f.svc.ListForChef(context.Background(), chefUser.ID, domain.ChefListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Afi", all[0].ClientNom)
	assert.True(t, all[0].Date.Before(all[2].Date))

	day, err := f.svc.ListForChef(context.Background(), chefUser.ID, domain.ChefListRequest{Date: "2025-06-02"})
	require.NoError(t, err)
	assert.Len(t, day, 2)

	evening, err := f.svc.ListForChef(context.Background(), chefUser.ID, domain.ChefListRequest{Date: "2025-06-02", Moment: "soir"})
	require.NoError(t, err)
	require.Len(t, evening, 1)
	assert.Equal(t, domain.MomentSoir, evening[0].Moment)

	_, err = f.svc.ListForChef(context.Background(), chefUser.ID, domain.ChefListRequest{Moment: "MATIN"})
	assert.ErrorIs(t, err, domain.ErrInvalidMoment)
	_, err = f.svc.ListForChef(context.Background(), chefUser.ID, domain.ChefListRequest{Date: "02/06/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestChefStatsAndAdminList(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 6, 1), [][2]string{{"Riz", "Pâte"}, {"Fufu", "Ablo"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleComplet, subscriptiondomain.StatusActive)

	f.Order(t, sub, f.Day(2025, 6, 1), domain.MomentMidi, domain.StatusDelivered)
	f.Order(t, sub, f.Day(2025, 6, 1).Add(7*time.Hour), domain.MomentSoir, domain.StatusPending)
	f.Order(t, sub, f.Day(2025, 6, 2), domain.MomentMidi, domain.StatusPending)

	stats, err := f.svc.ChefStats(context.Background(), chefUser.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Today)
	assert.Equal(t, int64(2), stats.ByStatus[domain.StatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[domain.StatusDelivered])

	today, err := f.svc.CountToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), today)

	pending, err := f.svc.AdminList(context.Background(), domain.AdminListRequest{ChefID: chef.ID.String(), Statut: "PENDING"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = f.svc.AdminList(context.Background(), domain.AdminListRequest{UserID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	mine, err := f.svc.ListMine(context.Background(), client.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.False(t, mine[0].Date.After(mine[1].Date))
}

func TestDeliverySheet(t *testing.T) {
	f := newFixture(t)
	chefUser, chef := f.Chef(t, "Ama")
	client := f.Client(t, "Afi")
	menu := f.Menu(t, chef.ID, f.Day(2025, 6, 2), [][2]string{{"Riz", "Pâte"}})
	sub := f.Subscription(t, client.ID, menu, subscriptiondomain.FormuleMidi, subscriptiondomain.StatusActive)
	order := f.Order(t, sub, f.Day(2025, 6, 2), domain.MomentMidi, domain.StatusPending)
	require.NoError(t, f.DB.Model(order).Update("delivery_address", "Bè Kpota").Error)

	r, err := f.svc.DeliverySheet(context.Background(), chefUser.ID, "2025-06-02")
	require.NoError(t, err)
	require.NotNil(t, r)

	require.Len(t, f.pdf.sheets, 1)
	sheet := f.pdf.sheets[0]
	assert.Equal(t, "Ama", sheet.ChefName)
	assert.Equal(t, "02/06/2025", sheet.Date)
	require.Len(t, sheet.Lines, 1)
	assert.Equal(t, "Afi Afi", sheet.Lines[0].Client)
	assert.Equal(t, "Bè Kpota", sheet.Lines[0].Adresse)
}
