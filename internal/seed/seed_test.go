package seed

import (
	"context"
	"errors"
	"testing"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccounts struct {
	authdomain.Service

	requests []authdomain.RegisterRequest
	err      error
}

func (f *fakeAccounts) CreateAccount(_ context.Context, req authdomain.RegisterRequest) (*authdomain.User, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &authdomain.User{ID: 42, Role: authdomain.Role(req.Role), Matricule: "AD-SUP-00001"}, nil
}

func TestEnsureSuperAdminCreatesAccount(t *testing.T) {
	accounts := &fakeAccounts{}
	cfg := config.Config{SuperAdminEmail: "root@chefetoile.com", SuperAdminPassword: "s3cret-pass"}

	require.NoError(t, EnsureSuperAdmin(context.Background(), accounts, cfg, zap.NewNop()))
	require.Len(t, accounts.requests, 1)
	assert.Equal(t, string(authdomain.RoleSuperAdmin), accounts.requests[0].Role)
	assert.Equal(t, "Super Admin", accounts.requests[0].Name)
}

func TestEnsureSuperAdminSkipsWithoutCredentials(t *testing.T) {
	accounts := &fakeAccounts{}
	require.NoError(t, EnsureSuperAdmin(context.Background(), accounts, config.Config{SuperAdminEmail: "root@chefetoile.com"}, nil))
	assert.Empty(t, accounts.requests)
}

func TestEnsureSuperAdminExistingAccount(t *testing.T) {
	accounts := &fakeAccounts{err: authdomain.ErrUserExists}
	cfg := config.Config{SuperAdminEmail: "root@chefetoile.com", SuperAdminPassword: "s3cret-pass"}
	assert.NoError(t, EnsureSuperAdmin(context.Background(), accounts, cfg, nil))

	accounts.err = errors.New("db down")
	assert.Error(t, EnsureSuperAdmin(context.Background(), accounts, cfg, nil))
}
