package service

import (
	"context"
	"fmt"

	"github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const listLimit = 500

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Auth          authdomain.Service
	Chefs         chefdomain.Service
	Menus         menudomain.Service
	Subscriptions subscriptiondomain.Service
	Orders        orderdomain.Service
	Ratings       ratingdomain.Service
	Audit         auditdomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	auth          authdomain.Service
	chefs         chefdomain.Service
	menus         menudomain.Service
	subscriptions subscriptiondomain.Service
	orders        orderdomain.Service
	ratings       ratingdomain.Service
	audit         auditdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("admin.service"),
		auth:          p.Auth,
		chefs:         p.Chefs,
		menus:         p.Menus,
		subscriptions: p.Subscriptions,
		orders:        p.Orders,
		ratings:       p.Ratings,
		audit:         p.Audit,
	}
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&chefdomain.Chef{}).Count(&stats.Chefs).Error; err != nil {
		return nil, fmt.Errorf("count chefs: %w", err)
	}
	if err := db.Model(&chefdomain.Chef{}).
		Where("is_suspended = ? AND statut = ?", false, chefdomain.StatusActive).
		Count(&stats.ActiveChefs).Error; err != nil {
		return nil, fmt.Errorf("count active chefs: %w", err)
	}
	if err := db.Model(&chefdomain.Chef{}).
		Where("is_suspended = ? OR statut = ?", true, chefdomain.StatusSuspended).
		Count(&stats.SuspendedChefs).Error; err != nil {
		return nil, fmt.Errorf("count suspended chefs: %w", err)
	}
	if err := db.Model(&authdomain.User{}).
		Where("role = ?", authdomain.RoleClient).
		Count(&stats.Clients).Error; err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	if err := db.Model(&menudomain.Menu{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveMenus).Error; err != nil {
		return nil, fmt.Errorf("count active menus: %w", err)
	}

	active, err := s.subscriptions.CountByStatus(ctx, subscriptiondomain.StatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveSubscriptions = active

	today, err := s.orders.CountToday(ctx)
	if err != nil {
		return nil, err
	}
	stats.OrdersToday = today

	return &stats, nil
}

func (s *Service) ListChefs(ctx context.Context) ([]chefdomain.Chef, error) {
	return s.chefs.ListAll(ctx, listLimit)
}

func (s *Service) ListClients(ctx context.Context) ([]authdomain.User, error) {
	return s.auth.ListClients(ctx, listLimit)
}

func (s *Service) ListOrders(ctx context.Context, req orderdomain.AdminListRequest) ([]orderdomain.Order, error) {
	return s.orders.AdminList(ctx, req)
}

func (s *Service) ListMenus(ctx context.Context) ([]menudomain.Menu, error) {
	return s.menus.ListAll(ctx, listLimit)
}

func (s *Service) SetChefSuspended(ctx context.Context, req domain.SuspendRequest) (*chefdomain.Chef, error) {
	if !req.Actor.Role.IsAdministrative() {
		return nil, domain.ErrNotAdmin
	}

	chef, err := s.chefs.SetSuspended(ctx, req.ChefID, req.Suspended)
	if err != nil {
		return nil, err
	}

	action := auditdomain.ActionChefReactivated
	if req.Suspended {
		action = auditdomain.ActionChefSuspended
	}
	actorID := req.Actor.UserID.String()
	targetID := chef.ID.String()
	if err := s.audit.AuditLog(ctx, string(req.Actor.Role), &actorID, action, "chef", &targetID, map[string]any{
		"slug": chef.Slug,
	}); err != nil {
		s.log.Warn("audit log failed", zap.String("chef_id", targetID), zap.Error(err))
	}
	return chef, nil
}

// RecomputeChefRating rebuilds a chef aggregate on demand, for example after a
// recompute failure was reported on rating submission.
func (s *Service) RecomputeChefRating(ctx context.Context, actor authdomain.Actor, chefID snowflake.ID) (*ratingdomain.Aggregate, error) {
	if !actor.Role.IsAdministrative() {
		return nil, domain.ErrNotAdmin
	}
	if _, err := s.chefs.GetByID(ctx, chefID); err != nil {
		return nil, err
	}

	agg, err := s.ratings.RecomputeChef(ctx, chefID)
	if err != nil {
		return nil, err
	}
	s.log.Info("chef rating recomputed",
		zap.String("chef_id", chefID.String()),
		zap.String("actor_id", actor.UserID.String()),
		zap.Float64("rating", agg.Rating),
		zap.Int64("total_ratings", agg.TotalRatings),
	)
	return agg, nil
}
