package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/password"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/token"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/providers/email"
	"github.com/UknowEdy/chefetoile-backend/internal/ratelimit"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetTokenBytes = 32

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Config  config.Config
	Repo    domain.Repository
	Chefs   domain.ChefProfiles
	Issuer  *token.Issuer
	Email   email.Provider
	Limiter *ratelimit.LoginLimiter `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	cfg     config.Config
	repo    domain.Repository
	chefs   domain.ChefProfiles
	issuer  *token.Issuer
	email   email.Provider
	limiter *ratelimit.LoginLimiter
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		cfg:     p.Config,
		repo:    p.Repo,
		chefs:   p.Chefs,
		issuer:  p.Issuer,
		email:   p.Email,
		limiter: p.Limiter,
	}
}

// Register is self sign-up. Only CLIENT and CHEF may be chosen; a chef
// account gets its profile in the same transaction.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	role := domain.RoleClient
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok || parsed.IsAdministrative() {
			return nil, domain.ErrInvalidRole
		}
		role = parsed
	}

	user, slug, err := s.createUser(ctx, req, role)
	if err != nil {
		return nil, err
	}
	return s.issue(user, slug)
}

func (s *Service) CreateAccount(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	user, _, err := s.createUser(ctx, req, role)
	return user, err
}

func (s *Service) createUser(ctx context.Context, req domain.RegisterRequest, role domain.Role) (*domain.User, *string, error) {
	name := strings.Join(strings.Fields(req.Name), " ")
	if name == "" {
		return nil, nil, domain.ErrInvalidName
	}
	emailAddr, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, nil, domain.ErrInvalidEmail
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, nil, domain.ErrInvalidPhone
	}
	if len(req.Password) < password.MinLength {
		return nil, nil, domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	prenom, nom := splitName(name)
	now := s.clock.Now()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Nom:          nom,
		Prenom:       prenom,
		Email:        emailAddr,
		Telephone:    phone,
		PasswordHash: &hashed,
		Role:         role,
		Statut:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == domain.RoleClient {
		user.PickupPoint.Address = strings.TrimSpace(req.Quartier)
	}

	var slug *string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.FindByEmail(ctx, tx, emailAddr); err == nil {
			return domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		matricule, err := s.uniqueMatricule(ctx, tx, role, name)
		if err != nil {
			return err
		}
		user.Matricule = matricule

		if err := s.repo.Create(ctx, tx, user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrUserExists
			}
			return err
		}

		if role == domain.RoleChef {
			created, err := s.chefs.CreateForUser(ctx, tx, user, req.Quartier)
			if err != nil {
				return err
			}
			slug = &created
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("account created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
		zap.String("matricule", user.Matricule),
	)
	return user, slug, nil
}

func (s *Service) uniqueMatricule(ctx context.Context, tx *gorm.DB, role domain.Role, name string) (string, error) {
	for i := 0; i < maxMatriculeAttempts; i++ {
		candidate := generateMatricule(role, name)
		exists, err := s.repo.ExistsMatricule(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("matricule space exhausted for %s", nameCode(name))
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	emailAddr, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if ok, retryAfter := s.limiter.Allow(ctx, req.IPAddress, emailAddr); !ok {
		s.log.Warn("login throttled", zap.String("ip", req.IPAddress), zap.Duration("retry_after", retryAfter))
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, s.db, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, domain.ErrSocialAccount
	}
	if !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if password.NeedsRehash(*user.PasswordHash) {
		s.rehash(ctx, user, req.Password)
	}

	var slug *string
	if user.Role == domain.RoleChef {
		chefSlug, suspended, ok, err := s.chefs.LookupByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if suspended {
			return nil, domain.ErrAccountSuspended
		}
		if ok {
			slug = &chefSlug
		}
	}

	return s.issue(user, slug)
}

// rehash upgrades a legacy hash after a successful login. Failure only
// delays the upgrade to the next login.
func (s *Service) rehash(ctx context.Context, user *domain.User, plain string) {
	hashed, err := password.Hash(plain)
	if err != nil {
		s.log.Warn("password rehash failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return
	}
	if err := s.repo.UpdateFields(ctx, s.db, user.ID, map[string]any{"password_hash": hashed}); err != nil {
		s.log.Warn("password rehash failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return
	}
	user.PasswordHash = &hashed
}

func (s *Service) issue(user *domain.User, slug *string) (*domain.AuthResult, error) {
	signed, expiresAt, err := s.issuer.Sign(user.ID.String(), string(user.Role))
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		User:      user,
		ChefSlug:  slug,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves a bearer or cookie token to its user.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := s.issuer.Parse(rawToken)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	id, err := snowflake.ParseString(claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Me(ctx context.Context, userID snowflake.ID) (*domain.User, error) {
	return s.repo.FindByID(ctx, s.db, userID)
}

func (s *Service) UpdatePickupPoint(ctx context.Context, userID snowflake.ID, req domain.UpdatePickupPointRequest) (*domain.User, error) {
	address := strings.TrimSpace(req.Address)
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, domain.ErrInvalidPickupPoint
	}
	if req.Latitude == nil && address == "" {
		return nil, domain.ErrInvalidPickupPoint
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180) {
		return nil, domain.ErrInvalidPickupPoint
	}

	now := s.clock.Now()
	err := s.repo.UpdateFields(ctx, s.db, userID, map[string]any{
		"pickup_latitude":   req.Latitude,
		"pickup_longitude":  req.Longitude,
		"pickup_address":    address,
		"pickup_updated_at": now,
		"updated_at":        now,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, userID)
}

// ForgotPassword never reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	normalized, err := normalizeEmail(emailAddr)
	if err != nil {
		return domain.ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, s.db, normalized)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := newResetToken()
	if err != nil {
		return err
	}
	expires := s.clock.Now().Add(s.cfg.AuthResetTokenTTL)
	hashed := hashToken(raw)
	if err := s.repo.UpdateFields(ctx, s.db, user.ID, map[string]any{
		"reset_token_hash":    &hashed,
		"reset_token_expires": &expires,
	}); err != nil {
		return err
	}

	err = s.email.SendTemplate(ctx, []string{user.Email}, email.TemplatePasswordReset, map[string]any{
		"name":       user.DisplayName(),
		"reset_url":  resetURL(s.cfg.PasswordResetURL, raw),
		"expires_in": s.cfg.AuthResetTokenTTL.String(),
	})
	if err != nil {
		s.log.Error("failed to send password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return domain.ErrInvalidToken
	}
	if len(req.Password) < password.MinLength {
		return domain.ErrInvalidPassword
	}

	user, err := s.repo.FindByResetTokenHash(ctx, s.db, hashToken(strings.TrimSpace(req.Token)))
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if user.ResetTokenExpires == nil || s.clock.Now().After(*user.ResetTokenExpires) {
		return domain.ErrTokenExpired
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, s.db, user.ID, map[string]any{
		"password_hash":       &hashed,
		"reset_token_hash":    nil,
		"reset_token_expires": nil,
		"updated_at":          s.clock.Now(),
	})
}

func (s *Service) ListClients(ctx context.Context, limit int) ([]domain.User, error) {
	return s.repo.ListByRole(ctx, s.db, domain.RoleClient, limit)
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

// splitName treats the first word as the given name. A single word fills both.
func splitName(name string) (prenom, nom string) {
	first, rest, found := strings.Cut(name, " ")
	if !found {
		return name, name
	}
	return first, rest
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func resetURL(base, raw string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(raw)
	}
	q := u.Query()
	q.Set("token", raw)
	u.RawQuery = q.Encode()
	return u.String()
}
