package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/token"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeChefs struct {
	created   map[snowflake.ID]string
	suspended map[snowflake.ID]bool
}

func (f *fakeChefs) CreateForUser(_ context.Context, tx *gorm.DB, user *domain.User, _ string) (string, error) {
	slug := strings.ToLower(user.Nom) + "-1234"
	f.created[user.ID] = slug
	return slug, nil
}

func (f *fakeChefs) LookupByUserID(_ context.Context, userID snowflake.ID) (string, bool, bool, error) {
	slug, ok := f.created[userID]
	return slug, f.suspended[userID], ok, nil
}

type fakeEmail struct {
	sent []map[string]any
}

func (f *fakeEmail) Send(context.Context, []string, string, string) error { return nil }

func (f *fakeEmail) SendTemplate(_ context.Context, _ []string, _ string, data map[string]any) error {
	f.sent = append(f.sent, data)
	return nil
}

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
	chefs *fakeChefs
	email *fakeEmail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	cfg := config.Config{
		AppName:           "chefetoile",
		AuthJWTSecret:     "test-secret",
		AuthJWTExpire:     24 * time.Hour,
		AuthResetTokenTTL: time.Hour,
		PasswordResetURL:  "https://app.test/reset-password",
	}
	f := &fixture{
		db:    conn,
		clock: clk,
		chefs: &fakeChefs{created: map[snowflake.ID]string{}, suspended: map[snowflake.ID]bool{}},
		email: &fakeEmail{},
	}
	f.svc = NewService(ServiceParam{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Config: cfg,
		Repo:   repository.Provide(),
		Chefs:  f.chefs,
		Issuer: token.NewIssuer(cfg, clk),
		Email:  f.email,
	})
	return f
}

func register(t *testing.T, f *fixture, role string) *domain.AuthResult {
	t.Helper()
	res, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Kodjo Mensah",
		Email:    "Kodjo@Example.com",
		Password: "secret123",
		Phone:    "+22890000000",
		Role:     role,
		Quartier: "Bè",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterClient(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "")

	assert.Equal(t, domain.RoleClient, res.User.Role)
	assert.Equal(t, "kodjo@example.com", res.User.Email)
	assert.Equal(t, "Kodjo", res.User.Prenom)
	assert.Equal(t, "Mensah", res.User.Nom)
	assert.Equal(t, "Bè", res.User.PickupPoint.Address)
	assert.Regexp(t, `^CL-KOD-\d{5}$`, res.User.Matricule)
	assert.Nil(t, res.ChefSlug)
	assert.NotEmpty(t, res.Token)

	user, err := f.svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
}

func TestRegisterChefCreatesProfile(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "chef")

	require.NotNil(t, res.ChefSlug)
	assert.Equal(t, "mensah-1234", *res.ChefSlug)
	assert.Regexp(t, `^CH-KOD-\d{5}$`, res.User.Matricule)
}

func TestRegisterRejectsAdministrativeRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Name: "X", Email: "x@example.com", Password: "secret123", Phone: "1", Role: "ADMIN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f, "")

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Autre", Email: "kodjo@example.com", Password: "secret123", Phone: "1",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, domain.RegisterRequest{Email: "a@b.c", Password: "secret123", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = f.svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "nope", Password: "secret123", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	_, err = f.svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@b.c", Password: "short", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	_, err = f.svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "a@b.c", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	register(t, f, "")
	ctx := context.Background()

	res, err := f.svc.Login(ctx, domain.LoginRequest{Email: "kodjo@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "kodjo@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "")
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&domain.User{}).Where("id = ?", res.User.ID).Update("password_hash", string(legacy)).Error)

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "kodjo@example.com", Password: "client123"})
	require.NoError(t, err)

	var stored domain.User
	require.NoError(t, f.db.First(&stored, "id = ?", res.User.ID).Error)
	require.NotNil(t, stored.PasswordHash)
	assert.True(t, strings.HasPrefix(*stored.PasswordHash, "$argon2id$"))

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "kodjo@example.com", Password: "client123"})
	assert.NoError(t, err)
}

func TestLoginSuspendedChef(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "CHEF")
	f.chefs.suspended[res.User.ID] = true

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "kodjo@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "")

	f.clock.Advance(25 * time.Hour)
	_, err := f.svc.Authenticate(context.Background(), res.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestUpdatePickupPoint(t *testing.T) {
	f := newFixture(t)
	res := register(t, f, "")
	lat, lng := 6.13, 1.22

	user, err := f.svc.UpdatePickupPoint(context.Background(), res.User.ID, domain.UpdatePickupPointRequest{
		Latitude: &lat, Longitude: &lng, Address: "Tokoin",
	})
	require.NoError(t, err)
	require.NotNil(t, user.PickupPoint.Latitude)
	assert.InDelta(t, lat, *user.PickupPoint.Latitude, 1e-9)
	assert.Equal(t, "Tokoin", user.PickupPoint.Address)

	_, err = f.svc.UpdatePickupPoint(context.Background(), res.User.ID, domain.UpdatePickupPointRequest{Latitude: &lat})
	assert.ErrorIs(t, err, domain.ErrInvalidPickupPoint)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	register(t, f, "")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.Empty(t, f.email.sent)

	require.NoError(t, f.svc.ForgotPassword(ctx, "kodjo@example.com"))
	require.Len(t, f.email.sent, 1)

	link, err := url.Parse(f.email.sent[0]["reset_url"].(string))
	require.NoError(t, err)
	raw := link.Query().Get("token")
	require.NotEmpty(t, raw)

	require.NoError(t, f.svc.ResetPassword(ctx, domain.ResetPasswordRequest{Token: raw, Password: "nouveau-mdp"}))
	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "kodjo@example.com", Password: "nouveau-mdp"})
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, domain.ResetPasswordRequest{Token: raw, Password: "encore-un"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPasswordResetExpired(t *testing.T) {
	f := newFixture(t)
	register(t, f, "")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, "kodjo@example.com"))
	link, err := url.Parse(f.email.sent[0]["reset_url"].(string))
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	err = f.svc.ResetPassword(ctx, domain.ResetPasswordRequest{Token: link.Query().Get("token"), Password: "nouveau-mdp"})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
