package seed

import (
	"context"
	"errors"
	"strings"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"go.uber.org/zap"
)

// EnsureSuperAdmin creates the platform super admin from SUPER_ADMIN_EMAIL
// and SUPER_ADMIN_PASSWORD. It is a no-op when either is unset or the
// account already exists.
func EnsureSuperAdmin(ctx context.Context, accounts authdomain.Service, cfg config.Config, log *zap.Logger) error {
	if accounts == nil {
		return errors.New("seed account service is required")
	}
	email := strings.TrimSpace(cfg.SuperAdminEmail)
	if email == "" || cfg.SuperAdminPassword == "" {
		return nil
	}

	name := strings.TrimSpace(cfg.SuperAdminDisplayName)
	if name == "" {
		name = "Super Admin"
	}
	user, err := accounts.CreateAccount(ctx, authdomain.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: cfg.SuperAdminPassword,
		Phone:    cfg.SuperAdminPhone,
		Role:     string(authdomain.RoleSuperAdmin),
	})
	if errors.Is(err, authdomain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}
	if log != nil {
		log.Info("super admin seeded",
			zap.String("user_id", user.ID.String()),
			zap.String("matricule", user.Matricule),
		)
	}
	return nil
}
