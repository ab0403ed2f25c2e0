package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const adminListDefault = 200

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Meals *config.MealsConfigHolder
	Repo  domain.Repository
	Chefs chefdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	meals *config.MealsConfigHolder
	repo  domain.Repository
	chefs chefdomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("menu.service"),
		genID: p.GenID,
		clock: p.Clock,
		meals: p.Meals,
		repo:  p.Repo,
		chefs: p.Chefs,
	}
}

// CreateWeekly anchors the week on startDate at the midday anchor. An active
// menu replaces the chef's previous active menu.
func (s *Service) CreateWeekly(ctx context.Context, chefUserID snowflake.ID, req domain.CreateMenuRequest) (*domain.Menu, error) {
	chef, err := s.chefs.GetByUserID(ctx, chefUserID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) > domain.MaxItems {
		return nil, domain.ErrTooManyItems
	}

	start, err := s.parseStart(req.StartDate)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.clock.Now()
	menu := &domain.Menu{
		ID:        s.genID.Generate(),
		ChefID:    chef.ID,
		Title:     s.title(req.Title, start),
		StartDate: start.UTC(),
		EndDate:   start.AddDate(0, 0, 6).UTC(),
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	menu.Items = s.buildItems(menu.ID, start, req.Items)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, menu); err != nil {
			return err
		}
		if isActive {
			return s.repo.DeactivateOthers(ctx, tx, chef.ID, menu.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create menu for chef %s: %w", chef.ID, err)
	}

	s.log.Info("menu created",
		zap.String("menu_id", menu.ID.String()),
		zap.String("chef_id", chef.ID.String()),
		zap.Int("items", len(menu.Items)),
	)
	return menu, nil
}

func (s *Service) Update(ctx context.Context, chefUserID, menuID snowflake.ID, req domain.UpdateMenuRequest) (*domain.Menu, error) {
	menu, chef, err := s.ownedMenu(ctx, chefUserID, menuID)
	if err != nil {
		return nil, err
	}

	start := menu.StartDate.In(s.meals.Get().Location())
	if req.StartDate != nil {
		if start, err = s.parseStart(*req.StartDate); err != nil {
			return nil, err
		}
		menu.StartDate = start.UTC()
		menu.EndDate = start.AddDate(0, 0, 6).UTC()
	}
	if req.Title != nil {
		menu.Title = s.title(*req.Title, start)
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	var items []domain.MenuItem
	switch {
	case req.Items != nil:
		if len(*req.Items) > domain.MaxItems {
			return nil, domain.ErrTooManyItems
		}
		items = s.buildItems(menu.ID, start, *req.Items)
	case req.StartDate != nil:
		// keep the dishes, move the dates
		inputs := make([]domain.ItemInput, len(menu.Items))
		for i, item := range menu.Items {
			inputs[i] = domain.ItemInput{Midi: item.Midi, Soir: item.Soir}
		}
		items = s.buildItems(menu.ID, start, inputs)
	}
	menu.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeader(ctx, tx, menu); err != nil {
			return err
		}
		if items != nil {
			if err := s.repo.ReplaceItems(ctx, tx, menu.ID, items); err != nil {
				return err
			}
		}
		if menu.IsActive {
			return s.repo.DeactivateOthers(ctx, tx, chef.ID, menu.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update menu %s: %w", menu.ID, err)
	}

	return s.repo.FindByID(ctx, s.db, menu.ID)
}

// Delete keeps menus that subscriptions still point at, only deactivating them.
func (s *Service) Delete(ctx context.Context, chefUserID, menuID snowflake.ID) (domain.DeleteResult, error) {
	menu, _, err := s.ownedMenu(ctx, chefUserID, menuID)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	var result domain.DeleteResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := s.repo.CountSubscriptions(ctx, tx, menu.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			menu.IsActive = false
			menu.UpdatedAt = s.clock.Now()
			result.Deactivated = true
			return s.repo.UpdateHeader(ctx, tx, menu)
		}
		return s.repo.Delete(ctx, tx, menu.ID)
	})
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete menu %s: %w", menu.ID, err)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Menu, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) ListByChef(ctx context.Context, chefID snowflake.ID) ([]domain.Menu, error) {
	return s.repo.ListByChef(ctx, s.db, chefID, true)
}

func (s *Service) ListMine(ctx context.Context, chefUserID snowflake.ID) ([]domain.Menu, error) {
	chef, err := s.chefs.GetByUserID(ctx, chefUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByChef(ctx, s.db, chef.ID, false)
}

func (s *Service) Current(ctx context.Context, chefID snowflake.ID) (*domain.Menu, error) {
	menus, err := s.repo.ListByChef(ctx, s.db, chefID, true)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, domain.ErrMenuNotFound
	}
	return &menus[0], nil
}

func (s *Service) ListAll(ctx context.Context, limit int) ([]domain.Menu, error) {
	if limit <= 0 {
		limit = adminListDefault
	}
	return s.repo.ListAll(ctx, s.db, limit)
}

func (s *Service) ownedMenu(ctx context.Context, chefUserID, menuID snowflake.ID) (*domain.Menu, *chefdomain.Chef, error) {
	chef, err := s.chefs.GetByUserID(ctx, chefUserID)
	if err != nil {
		return nil, nil, err
	}
	menu, err := s.repo.FindByID(ctx, s.db, menuID)
	if err != nil {
		return nil, nil, err
	}
	if menu.ChefID != chef.ID {
		return nil, nil, fmt.Errorf("%w: menu %s", domain.ErrForbidden, menuID)
	}
	return menu, chef, nil
}

// parseStart returns the start day at the midday anchor, in local time.
func (s *Service) parseStart(raw string) (time.Time, error) {
	cfg := s.meals.Get()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.ErrInvalidStartDate
	}

	day, err := time.ParseInLocation("2006-01-02", raw, cfg.Location())
	if err != nil {
		day, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidStartDate, raw)
		}
	}
	h, m := cfg.MidiClock()
	return cfg.AtClock(day, h, m), nil
}

func (s *Service) title(raw string, start time.Time) string {
	if title := strings.TrimSpace(raw); title != "" {
		return title
	}
	return "Semaine du " + start.Format("02/01/2006")
}

func (s *Service) buildItems(menuID snowflake.ID, start time.Time, inputs []domain.ItemInput) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, domain.MenuItem{
			ID:       s.genID.Generate(),
			MenuID:   menuID,
			Position: i,
			Date:     start.AddDate(0, 0, i).UTC(),
			Midi:     in.Midi,
			Soir:     in.Soir,
		})
	}
	return items
}
