package service

import (
	"context"
	"testing"
	"time"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, config.Config{})
}

func newFixtureWithConfig(t *testing.T, cfg config.Config) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&authdomain.User{}, &domain.Chef{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 8, 0, 0, 1234e6, time.UTC))
	svc := NewService(ServiceParam{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Config: cfg,
		Meals:  config.NewStaticMealsConfigHolder(config.DefaultMealsConfig()),
		Repo:   repository.Provide(),
	})
	return &fixture{svc: svc, db: conn, node: node, clock: clk}
}

func (f *fixture) createChef(t *testing.T, name, matricule, quartier string) (*authdomain.User, string) {
	t.Helper()
	user := &authdomain.User{
		ID:        f.node.Generate(),
		Nom:       name,
		Prenom:    name,
		Email:     matricule + "@example.com",
		Telephone: "+22890000000",
		Role:      authdomain.RoleChef,
		Matricule: matricule,
		Statut:    authdomain.UserStatusActive,
	}
	require.NoError(t, f.db.Create(user).Error)

	var chefSlug string
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		chefSlug, err = f.svc.CreateForUser(context.Background(), tx, user, quartier)
		return err
	})
	require.NoError(t, err)
	return user, chefSlug
}

func TestCreateForUserDefaults(t *testing.T) {
	f := newFixture(t)
	user, chefSlug := f.createChef(t, "Kodjo Ékué", "CH-KOD-10001", "")

	assert.Equal(t, "kodjo-ekue-1234", chefSlug)

	chef, err := f.svc.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lomé", chef.Quartier)
	assert.Equal(t, domain.StatusActive, chef.Statut)
	assert.Equal(t, "CH-KOD-10001", chef.Matricule)

	settings := chef.Settings.Data()
	assert.Equal(t, int64(7500), settings.PrixMidi)
	assert.Equal(t, int64(7500), settings.PrixSoir)
	assert.Equal(t, int64(14000), settings.PrixComplet)
	assert.Equal(t, 10, settings.RayonLivraison)
	assert.True(t, settings.JoursService.Samedi)
	assert.False(t, settings.JoursService.Dimanche)
}

func TestSlugCollisionGetsNewSuffix(t *testing.T) {
	f := newFixture(t)
	_, first := f.createChef(t, "Ama", "CH-AMA-10001", "Bè")
	_, second := f.createChef(t, "Ama", "CH-AMA-10002", "Bè")

	assert.Equal(t, "ama-1234", first)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^ama-\d{4}$`, second)
}

func TestListSearchAndSuspension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.createChef(t, "Ama", "CH-AMA-10001", "Bè")
	kodjo, _ := f.createChef(t, "Kodjo", "CH-KOD-10002", "Tokoin")

	chefs, err := f.svc.List(ctx, domain.ListRequest{Search: "kod-1000"})
	require.NoError(t, err)
	require.Len(t, chefs, 1)
	assert.Equal(t, kodjo.ID, chefs[0].UserID)

	chefs, err = f.svc.List(ctx, domain.ListRequest{Quartier: "tok"})
	require.NoError(t, err)
	require.Len(t, chefs, 1)

	_, err = f.svc.SetSuspended(ctx, chefs[0].ID, true)
	require.NoError(t, err)

	chefs, err = f.svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, chefs, 1)

	all, err := f.svc.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, suspended, ok, err := f.svc.LookupByUserID(ctx, kodjo.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, suspended)
}

func TestGetBySlugHidesSuspendedAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, chefSlug := f.createChef(t, "Ama", "CH-AMA-10001", "Bè")

	chef, err := f.svc.GetBySlug(ctx, chefSlug)
	require.NoError(t, err)

	_, err = f.svc.SetSuspended(ctx, chef.ID, true)
	require.NoError(t, err)

	_, err = f.svc.GetBySlug(ctx, chefSlug)
	assert.ErrorIs(t, err, domain.ErrChefNotFound)
}

// suspendBehindService flips the flag the way another replica would, without
// touching this replica's cache.
func (f *fixture) suspendBehindService(t *testing.T, chefID snowflake.ID) {
	t.Helper()
	require.NoError(t, f.db.Model(&domain.Chef{}).Where("id = ?", chefID).Update("is_suspended", true).Error)
}

func TestGetBySlugCacheExpires(t *testing.T) {
	f := newFixtureWithConfig(t, config.Config{ChefSlugCacheTTL: 30 * time.Second})
	ctx := context.Background()
	_, chefSlug := f.createChef(t, "Kossi", "CH-KOS-10001", "Tokoin")

	chef, err := f.svc.GetBySlug(ctx, chefSlug)
	require.NoError(t, err)
	f.suspendBehindService(t, chef.ID)

	_, err = f.svc.GetBySlug(ctx, chefSlug)
	require.NoError(t, err, "served from cache until the ttl elapses")

	f.clock.Advance(31 * time.Second)
	_, err = f.svc.GetBySlug(ctx, chefSlug)
	assert.ErrorIs(t, err, domain.ErrChefNotFound)
}

func TestGetBySlugWithCacheDisabled(t *testing.T) {
	f := newFixtureWithConfig(t, config.Config{ChefSlugCacheDisabled: true})
	ctx := context.Background()
	_, chefSlug := f.createChef(t, "Kossi", "CH-KOS-10002", "Tokoin")

	chef, err := f.svc.GetBySlug(ctx, chefSlug)
	require.NoError(t, err)
	f.suspendBehindService(t, chef.ID)

	_, err = f.svc.GetBySlug(ctx, chefSlug)
	assert.ErrorIs(t, err, domain.ErrChefNotFound)
}

func TestUpdateProfileKeepsRatingColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.createChef(t, "Ama", "CH-AMA-10001", "Bè")

	require.NoError(t, f.db.Model(&domain.Chef{}).Where("user_id = ?", user.ID).
		Updates(map[string]any{"rating": 4.5, "total_ratings": 2}).Error)

	prix := int64(8000)
	chef, err := f.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{
		Bio: strPtr("Cuisine togolaise"),
		Settings: &domain.SettingsPatch{
			PrixMidi:     &prix,
			JoursService: map[string]bool{"dimanche": true},
		},
		PreparationAddress: strPtr(" Rue 12, Bè "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cuisine togolaise", chef.Bio)

	stored, err := f.svc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stored.Rating, 1e-9)
	assert.Equal(t, int64(2), stored.TotalRatings)
	assert.Equal(t, int64(8000), stored.Settings.Data().PrixMidi)
	assert.Equal(t, int64(7500), stored.Settings.Data().PrixSoir)
	assert.True(t, stored.Settings.Data().JoursService.Dimanche)
	assert.Equal(t, "Rue 12, Bè", stored.Settings.Data().PreparationAddress)
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, _ := f.createChef(t, "Ama", "CH-AMA-10001", "Bè")

	negative := int64(-1)
	_, err := f.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Settings: &domain.SettingsPatch{PrixSoir: &negative}})
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	_, err = f.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Settings: &domain.SettingsPatch{JoursService: map[string]bool{"funday": true}}})
	assert.ErrorIs(t, err, domain.ErrInvalidDay)

	_, err = f.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.UpdateProfile(ctx, f.node.Generate(), domain.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrChefNotFound)
}

func strPtr(s string) *string { return &s }
