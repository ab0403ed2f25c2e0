package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	"github.com/UknowEdy/chefetoile-backend/internal/providers/email"
	"github.com/UknowEdy/chefetoile-backend/internal/ratelimit"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/UknowEdy/chefetoile-backend/pkg/db/option"
	"github.com/UknowEdy/chefetoile-backend/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activationLockTTL = 30 * time.Second

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Meals   *config.MealsConfigHolder
	Repo    domain.Repository
	Users   authdomain.Repository
	Chefs   chefdomain.Repository
	Menus   menudomain.Repository
	Audit   auditdomain.Service
	Email   email.Provider
	Metrics *metrics.Metrics  `optional:"true"`
	Locker  *ratelimit.Locker `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	meals   *config.MealsConfigHolder
	repo    domain.Repository
	store   repository.Repository[domain.Subscription]
	users   authdomain.Repository
	chefs   chefdomain.Repository
	menus   menudomain.Repository
	audit   auditdomain.Service
	email   email.Provider
	metrics *metrics.Metrics
	locker  *ratelimit.Locker
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("subscription.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		meals:   p.Meals,
		repo:    p.Repo,
		store:   repository.ProvideStore[domain.Subscription](p.DB),
		users:   p.Users,
		chefs:   p.Chefs,
		menus:   p.Menus,
		audit:   p.Audit,
		email:   p.Email,
		metrics: p.Metrics,
		locker:  p.Locker,
	}
}

func (s *Service) Create(ctx context.Context, clientID snowflake.ID, req domain.CreateRequest) (*domain.Subscription, error) {
	formule, ok := domain.ParseFormule(strings.ToUpper(strings.TrimSpace(req.Formule)))
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormule, req.Formule)
	}
	if req.PrixTotal < 0 {
		return nil, domain.ErrInvalidPrice
	}
	menuID, err := snowflake.ParseString(strings.TrimSpace(req.MenuID))
	if err != nil || menuID == 0 {
		return nil, menudomain.ErrInvalidMenuID
	}

	menu, err := s.menus.FindByID(ctx, s.db, menuID)
	if err != nil {
		return nil, err
	}
	if !menu.IsActive {
		return nil, fmt.Errorf("%w: menu %s", domain.ErrMenuInactive, menu.ID)
	}
	chef, err := s.chefs.FindByID(ctx, s.db, menu.ChefID)
	if err != nil {
		return nil, err
	}
	if chef.IsSuspended {
		return nil, fmt.Errorf("%w: chef %s", domain.ErrChefUnavailable, chef.ID)
	}

	prix := req.PrixTotal
	if prix == 0 {
		prix = price(chef.Settings.Data(), formule, menu.ServedDays())
	}

	now := s.clock.Now()
	sub := &domain.Subscription{
		ID:        s.genID.Generate(),
		UserID:    clientID,
		ChefID:    chef.ID,
		MenuID:    menu.ID,
		Formule:   formule,
		PrixTotal: prix,
		DateDebut: menu.StartDate,
		DateFin:   menu.EndDate,
		Statut:    domain.StatusPendingValidation,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, sub); err != nil {
		return nil, fmt.Errorf("create subscription for menu %s: %w", menu.ID, err)
	}

	s.log.Info("subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("menu_id", menu.ID.String()),
		zap.String("formule", string(formule)),
	)
	return sub, nil
}

// price is the per-day formule price times the number of served days.
func price(settings chefdomain.Settings, formule domain.Formule, days int) int64 {
	var perDay int64
	switch formule {
	case domain.FormuleMidi:
		perDay = settings.PrixMidi
	case domain.FormuleSoir:
		perDay = settings.PrixSoir
	case domain.FormuleComplet:
		perDay = settings.PrixComplet
	}
	return perDay * int64(days)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Subscription, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) ListMine(ctx context.Context, clientID snowflake.ID) ([]domain.Subscription, error) {
	rows, err := s.store.Find(ctx, &domain.Subscription{UserID: clientID},
		option.WithSortBy(option.QuerySortBy{SortBy: "id", Allow: map[string]bool{"id": true}}),
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Subscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) ListChefSubscribers(ctx context.Context, chefUserID snowflake.ID) ([]domain.Subscriber, error) {
	chef, err := s.chefs.FindByUserID(ctx, s.db, chefUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSubscribers(ctx, s.db, chef.ID, []domain.Status{
		domain.StatusActive,
		domain.StatusPendingValidation,
	})
}

// Cancel is allowed to the owning client while the subscription is pending or
// active. Orders not yet being prepared are cancelled with it.
func (s *Service) Cancel(ctx context.Context, clientID, id snowflake.ID) (*domain.Subscription, error) {
	var out *domain.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if sub.UserID != clientID {
			return fmt.Errorf("%w: subscription %s", domain.ErrForbidden, id)
		}
		if sub.Statut != domain.StatusPendingValidation && sub.Statut != domain.StatusActive {
			return fmt.Errorf("%w: subscription %s is %s", domain.ErrInvalidState, id, sub.Statut)
		}

		now := s.clock.Now()
		n, err := s.repo.TransitionStatus(ctx, tx, id, sub.Statut, domain.StatusCancelled, map[string]any{"cancelled_at": now})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: subscription %s changed concurrently", domain.ErrInvalidState, id)
		}
		cancelled, err := s.repo.CancelPendingOrders(ctx, tx, id, now)
		if err != nil {
			return err
		}
		if err := s.repo.RefreshSubscriberCount(ctx, tx, sub.ChefID); err != nil {
			return err
		}

		s.log.Info("subscription cancelled",
			zap.String("subscription_id", id.String()),
			zap.Int64("orders_cancelled", cancelled),
		)
		out, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Activate validates or rejects a pending subscription. Validation expands
// the menu into orders; the orders and the ACTIVE flip commit together.
func (s *Service) Activate(ctx context.Context, req domain.ActivateRequest) (*domain.ActivationResult, error) {
	if _, ok := domain.ParseAction(string(req.Action)); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, req.Action)
	}

	key := ratelimit.SubscriptionActivationKey(req.SubscriptionID.String())
	token, acquired, err := s.locker.TryLock(ctx, key, activationLockTTL)
	if err != nil {
		s.log.Warn("activation lock unavailable, relying on database guards",
			zap.String("subscription_id", req.SubscriptionID.String()),
			zap.Error(err),
		)
		acquired = true
	}
	if !acquired {
		s.metrics.RecordActivation(ctx, "in_progress")
		return nil, fmt.Errorf("%w: subscription %s", domain.ErrActivationInProgress, req.SubscriptionID)
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.log.Warn("failed to release activation lock", zap.String("key", key), zap.Error(err))
		}
	}()

	var (
		result    *domain.ActivationResult
		recipient *authdomain.User
		chef      *chefdomain.Chef
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.repo.FindByIDForUpdate(ctx, tx, req.SubscriptionID)
		if err != nil {
			return err
		}
		chef, err = s.chefs.FindByID(ctx, tx, sub.ChefID)
		if err != nil {
			return fmt.Errorf("chef of subscription %s: %w", sub.ID, err)
		}
		if err := s.checkOwnership(ctx, tx, req.Actor, chef); err != nil {
			return err
		}
		menu, err := s.menus.FindByID(ctx, tx, sub.MenuID)
		if err != nil {
			return fmt.Errorf("menu of subscription %s: %w", sub.ID, err)
		}

		switch sub.Statut {
		case domain.StatusPendingValidation:
		case domain.StatusActive:
			return fmt.Errorf("%w: subscription %s", domain.ErrAlreadyActive, sub.ID)
		default:
			return fmt.Errorf("%w: subscription %s is %s", domain.ErrInvalidState, sub.ID, sub.Statut)
		}

		now := s.clock.Now()
		decided := map[string]any{"validated_at": now, "validated_by": req.Actor.UserID}

		if req.Action == domain.ActionReject {
			n, err := s.repo.TransitionStatus(ctx, tx, sub.ID, domain.StatusPendingValidation, domain.StatusRejected, decided)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: subscription %s changed concurrently", domain.ErrInvalidState, sub.ID)
			}
			sub.Statut = domain.StatusRejected
			result = &domain.ActivationResult{Status: domain.StatusRejected, Subscription: sub}
			return nil
		}

		recipient, err = s.users.FindByID(ctx, tx, sub.UserID)
		if err != nil {
			return fmt.Errorf("client of subscription %s: %w", sub.ID, err)
		}

		orders := planOrders(sub, menu, recipient, s.meals.Get(), s.genID.Generate)
		inserted, err := s.repo.InsertOrders(ctx, tx, orders)
		if err != nil {
			return fmt.Errorf("insert orders for subscription %s: %w", sub.ID, err)
		}

		n, err := s.repo.TransitionStatus(ctx, tx, sub.ID, domain.StatusPendingValidation, domain.StatusActive, decided)
		if err != nil {
			return fmt.Errorf("activate subscription %s: %w", sub.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: subscription %s", domain.ErrAlreadyActive, sub.ID)
		}
		if err := s.repo.RefreshSubscriberCount(ctx, tx, sub.ChefID); err != nil {
			return err
		}

		sub.Statut = domain.StatusActive
		sub.ValidatedAt = &now
		result = &domain.ActivationResult{
			OrdersGenerated: int(inserted),
			Status:          domain.StatusActive,
			Subscription:    sub,
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordActivation(ctx, activationOutcome(err))
		return nil, err
	}

	s.afterActivation(ctx, req, result, recipient, chef)
	return result, nil
}

func (s *Service) checkOwnership(ctx context.Context, tx *gorm.DB, actor authdomain.Actor, chef *chefdomain.Chef) error {
	if actor.Role != authdomain.RoleChef {
		return nil
	}
	own, err := s.chefs.FindByUserID(ctx, tx, actor.UserID)
	if errors.Is(err, chefdomain.ErrChefNotFound) {
		return fmt.Errorf("%w: user %s has no chef profile", domain.ErrForbidden, actor.UserID)
	}
	if err != nil {
		return err
	}
	if own.ID != chef.ID {
		return fmt.Errorf("%w: chef %s does not own this subscription", domain.ErrForbidden, own.ID)
	}
	return nil
}

func (s *Service) afterActivation(ctx context.Context, req domain.ActivateRequest, result *domain.ActivationResult, recipient *authdomain.User, chef *chefdomain.Chef) {
	sub := result.Subscription
	actorID := req.Actor.UserID.String()
	targetID := sub.ID.String()

	action := auditdomain.ActionSubscriptionRejected
	outcome := "rejected"
	if result.Status == domain.StatusActive {
		action = auditdomain.ActionSubscriptionValidated
		outcome = "validated"
		s.metrics.RecordOrdersGenerated(ctx, string(sub.Formule), result.OrdersGenerated)
	}
	s.metrics.RecordActivation(ctx, outcome)

	s.log.Info("subscription decided",
		zap.String("subscription_id", targetID),
		zap.String("statut", string(result.Status)),
		zap.Int("orders_generated", result.OrdersGenerated),
		zap.String("actor_id", actorID),
	)

	if err := s.audit.AuditLog(ctx, string(req.Actor.Role), &actorID, action, "subscription", &targetID, map[string]any{
		"formule":          string(sub.Formule),
		"orders_generated": result.OrdersGenerated,
	}); err != nil {
		s.log.Warn("audit log failed", zap.String("subscription_id", targetID), zap.Error(err))
	}

	if result.Status != domain.StatusActive || recipient == nil || recipient.Email == "" {
		return
	}
	loc := s.meals.Get().Location()
	err := s.email.SendTemplate(ctx, []string{recipient.Email}, email.TemplateSubscriptionValidated, map[string]any{
		"name":       recipient.DisplayName(),
		"chef":       chef.Name,
		"orders":     result.OrdersGenerated,
		"date_debut": sub.DateDebut.In(loc).Format("02/01/2006"),
		"date_fin":   sub.DateFin.In(loc).Format("02/01/2006"),
	})
	if err != nil {
		s.log.Warn("validation email not sent", zap.String("subscription_id", targetID), zap.Error(err))
	}
}

func activationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	default:
		return "error"
	}
}

// CompleteEnded marks ended ACTIVE subscriptions COMPLETED and abandoned
// PENDING_VALIDATION ones EXPIRED, at most limit of each per call.
func (s *Service) CompleteEnded(ctx context.Context, now time.Time, limit int) (domain.LifecycleResult, error) {
	var result domain.LifecycleResult

	transitions := []struct {
		from, to domain.Status
		counter  *int
	}{
		{domain.StatusActive, domain.StatusCompleted, &result.Completed},
		{domain.StatusPendingValidation, domain.StatusExpired, &result.Expired},
	}

	for _, tr := range transitions {
		subs, err := s.repo.ListEnded(ctx, s.db, tr.from, now, limit)
		if err != nil {
			return result, err
		}
		for _, sub := range subs {
			var changed bool
			err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				n, err := s.repo.TransitionStatus(ctx, tx, sub.ID, tr.from, tr.to, nil)
				if err != nil || n == 0 {
					return err
				}
				changed = true
				if tr.from == domain.StatusActive {
					return s.repo.RefreshSubscriberCount(ctx, tx, sub.ChefID)
				}
				return nil
			})
			if err != nil {
				return result, fmt.Errorf("close subscription %s: %w", sub.ID, err)
			}
			if changed {
				*tr.counter++
			}
		}
	}

	if result.Completed > 0 || result.Expired > 0 {
		s.log.Info("subscription lifecycle applied",
			zap.Int("completed", result.Completed),
			zap.Int("expired", result.Expired),
		)
	}
	return result, nil
}

func (s *Service) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return s.repo.CountByStatus(ctx, s.db, status)
}
