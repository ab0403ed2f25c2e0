package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/cache"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	slugCacheTTL     = time.Minute
	maxSlugAttempts  = 10
	defaultQuartier  = "Lomé"
	adminListDefault = 500
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config
	Meals  *config.MealsConfigHolder
	Repo   domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	meals *config.MealsConfigHolder
	repo  domain.Repository
	slugs cache.Cache[string, domain.Chef]
	ttl   time.Duration
}

func NewService(p ServiceParam) domain.Service {
	svc := &Service{
		db:    p.DB,
		log:   p.Log.Named("chef.service"),
		genID: p.GenID,
		clock: p.Clock,
		meals: p.Meals,
		repo:  p.Repo,
		slugs: cache.NewTTLCacheWithClock[string, domain.Chef](p.Clock.Now),
		ttl:   slugCacheTTL,
	}
	if p.Config.ChefSlugCacheTTL > 0 {
		svc.ttl = p.Config.ChefSlugCacheTTL
	}
	if p.Config.ChefSlugCacheDisabled {
		svc.slugs = cache.NoopCache[string, domain.Chef]{}
	}
	return svc
}

// CreateForUser must run on the caller's transaction.
func (s *Service) CreateForUser(ctx context.Context, tx *gorm.DB, user *authdomain.User, quartier string) (string, error) {
	name := user.DisplayName()
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrInvalidName
	}

	chefSlug, err := s.uniqueSlug(ctx, tx, name)
	if err != nil {
		return "", err
	}

	quartier = strings.TrimSpace(quartier)
	if quartier == "" {
		quartier = defaultQuartier
	}

	now := s.clock.Now()
	chef := &domain.Chef{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Name:      name,
		Slug:      chefSlug,
		Phone:     user.Telephone,
		Email:     user.Email,
		Quartier:  quartier,
		Settings:  datatypes.NewJSONType(domain.DefaultSettings(s.meals.Get().ChefDefaults)),
		Statut:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, tx, chef); err != nil {
		return "", fmt.Errorf("create chef profile for user %s: %w", user.ID, err)
	}
	return chef.Slug, nil
}

func (s *Service) uniqueSlug(ctx context.Context, tx *gorm.DB, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "chef"
	}
	suffix := s.clock.Now().UnixMilli() % 10000
	for i := 0; i < maxSlugAttempts; i++ {
		candidate := fmt.Sprintf("%s-%04d", base, suffix)
		exists, err := s.repo.SlugExists(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		suffix = int64(rand.IntN(10000))
	}
	return "", fmt.Errorf("no free slug for %q", base)
}

func (s *Service) LookupByUserID(ctx context.Context, userID snowflake.ID) (string, bool, bool, error) {
	chef, err := s.repo.FindByUserID(ctx, s.db, userID)
	if errors.Is(err, domain.ErrChefNotFound) {
		return "", false, false, nil
	}
	if err != nil {
		return "", false, false, err
	}
	return chef.Slug, isSuspended(chef), true, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Chef, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID snowflake.ID) (*domain.Chef, error) {
	return s.repo.FindByUserID(ctx, s.db, userID)
}

func (s *Service) GetBySlug(ctx context.Context, chefSlug string) (*domain.Chef, error) {
	key := cache.Key(chefSlug)
	if key == "" {
		return nil, domain.ErrChefNotFound
	}
	if cached, ok := s.slugs.Get(key); ok {
		return &cached, nil
	}

	chef, err := s.repo.FindBySlug(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	if isSuspended(chef) {
		return nil, domain.ErrChefNotFound
	}
	s.slugs.Set(key, *chef, s.ttl)
	return chef, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Chef, error) {
	return s.repo.List(ctx, s.db, domain.ListFilter{
		Search:   req.Search,
		Quartier: req.Quartier,
	})
}

func (s *Service) ListAll(ctx context.Context, limit int) ([]domain.Chef, error) {
	if limit <= 0 {
		limit = adminListDefault
	}
	return s.repo.List(ctx, s.db, domain.ListFilter{IncludeSuspended: true, Limit: limit})
}

func (s *Service) UpdateProfile(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) (*domain.Chef, error) {
	chef, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		chef.Name = name
	}
	assignTrimmed(&chef.Phone, req.Phone)
	assignTrimmed(&chef.Bio, req.Bio)
	assignTrimmed(&chef.CuisineType, req.CuisineType)
	assignTrimmed(&chef.Address, req.Address)
	assignTrimmed(&chef.Quartier, req.Quartier)

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, domain.ErrInvalidLocation
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
			return nil, domain.ErrInvalidLocation
		}
		chef.Latitude, chef.Longitude = req.Latitude, req.Longitude
	}

	settings := chef.Settings.Data()
	if req.PreparationAddress != nil {
		settings.PreparationAddress = strings.TrimSpace(*req.PreparationAddress)
	}
	if req.Settings != nil {
		if err := applySettingsPatch(&settings, *req.Settings); err != nil {
			return nil, err
		}
	}
	chef.Settings = datatypes.NewJSONType(settings)
	chef.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, chef); err != nil {
		return nil, fmt.Errorf("update chef %s: %w", chef.ID, err)
	}
	s.slugs.Delete(cache.Key(chef.Slug))
	return chef, nil
}

func (s *Service) SetSuspended(ctx context.Context, chefID snowflake.ID, suspended bool) (*domain.Chef, error) {
	chef, err := s.repo.FindByID(ctx, s.db, chefID)
	if err != nil {
		return nil, err
	}

	chef.IsSuspended = suspended
	chef.Statut = domain.StatusActive
	if suspended {
		chef.Statut = domain.StatusSuspended
	}
	chef.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, chef); err != nil {
		return nil, fmt.Errorf("suspend chef %s: %w", chef.ID, err)
	}
	s.slugs.Delete(cache.Key(chef.Slug))

	s.log.Info("chef status changed",
		zap.String("chef_id", chef.ID.String()),
		zap.Bool("suspended", suspended),
	)
	return chef, nil
}

func isSuspended(chef *domain.Chef) bool {
	return chef.IsSuspended || chef.Statut == domain.StatusSuspended
}

func assignTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func applySettingsPatch(settings *domain.Settings, patch domain.SettingsPatch) error {
	for _, price := range []*int64{patch.PrixMidi, patch.PrixSoir, patch.PrixComplet} {
		if price != nil && *price < 0 {
			return domain.ErrInvalidSettings
		}
	}
	if patch.RayonLivraison != nil && *patch.RayonLivraison < 0 {
		return domain.ErrInvalidSettings
	}

	if patch.PrixMidi != nil {
		settings.PrixMidi = *patch.PrixMidi
	}
	if patch.PrixSoir != nil {
		settings.PrixSoir = *patch.PrixSoir
	}
	if patch.PrixComplet != nil {
		settings.PrixComplet = *patch.PrixComplet
	}
	if patch.RayonLivraison != nil {
		settings.RayonLivraison = *patch.RayonLivraison
	}
	assignTrimmed(&settings.PreparationAddress, patch.PreparationAddress)
	assignTrimmed(&settings.HorairesLivraison, patch.HorairesLivraison)

	for day, on := range patch.JoursService {
		switch strings.ToLower(strings.TrimSpace(day)) {
		case "lundi":
			settings.JoursService.Lundi = on
		case "mardi":
			settings.JoursService.Mardi = on
		case "mercredi":
			settings.JoursService.Mercredi = on
		case "jeudi":
			settings.JoursService.Jeudi = on
		case "vendredi":
			settings.JoursService.Vendredi = on
		case "samedi":
			settings.JoursService.Samedi = on
		case "dimanche":
			settings.JoursService.Dimanche = on
		default:
			return fmt.Errorf("%w: %s", domain.ErrInvalidDay, day)
		}
	}
	return nil
}
