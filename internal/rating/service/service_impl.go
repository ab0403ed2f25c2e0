package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const chefListLimit = 100

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Orders  orderdomain.Repository
	Audit   auditdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	orders  orderdomain.Repository
	audit   auditdomain.Service
	metrics *metrics.Metrics
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("rating.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		orders:  p.Orders,
		audit:   p.Audit,
		metrics: p.Metrics,
	}
}

// Submit stores the client's rating of a delivered order and refreshes the
// chef aggregate. The rating and the order back-reference commit together;
// the aggregate is recomputed afterwards from the full rating set.
func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Rating, error) {
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > domain.MaxCommentLength {
		return nil, domain.ErrCommentTooLong
	}

	var rating *domain.Rating
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByID(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if order.UserID != req.ClientID {
			return fmt.Errorf("%w: order %s", orderdomain.ErrOrderNotFound, req.OrderID)
		}
		if order.Statut != orderdomain.StatusDelivered {
			return fmt.Errorf("%w: order %s is %s", domain.ErrOrderNotDelivered, order.ID, order.Statut)
		}
		if order.RatingID != nil {
			return fmt.Errorf("%w: order %s", domain.ErrAlreadyRated, order.ID)
		}
		exists, err := s.repo.ExistsForOrder(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: order %s", domain.ErrAlreadyRated, order.ID)
		}

		scores, err := numericScores(req.Scores)
		if err != nil {
			return err
		}
		notes := make(datatypes.JSONMap, len(scores))
		for k, v := range scores {
			notes[k] = v
		}

		rating = &domain.Rating{
			ID:             s.genID.Generate(),
			UserID:         req.ClientID,
			ChefID:         order.ChefID,
			OrderID:        order.ID,
			Notes:          notes,
			Commentaire:    comment,
			MoyenneGlobale: round2(mean(scores)),
			CreatedAt:      s.clock.Now(),
		}
		if err := s.repo.Create(ctx, tx, rating); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return fmt.Errorf("%w: order %s", domain.ErrAlreadyRated, order.ID)
			}
			return fmt.Errorf("insert rating for order %s: %w", order.ID, err)
		}
		attached, err := s.repo.AttachToOrder(ctx, tx, order.ID, rating.ID)
		if err != nil {
			return err
		}
		if !attached {
			return fmt.Errorf("%w: order %s", domain.ErrAlreadyRated, order.ID)
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordRatingSubmitted(ctx, submitOutcome(err))
		return nil, err
	}
	s.metrics.RecordRatingSubmitted(ctx, "accepted")

	actorID := req.ClientID.String()
	targetID := rating.ID.String()
	if err := s.audit.AuditLog(ctx, "CLIENT", &actorID, auditdomain.ActionRatingSubmitted, "rating", &targetID, map[string]any{
		"order_id":        rating.OrderID.String(),
		"chef_id":         rating.ChefID.String(),
		"moyenne_globale": rating.MoyenneGlobale,
	}); err != nil {
		s.log.Warn("audit log failed", zap.String("rating_id", targetID), zap.Error(err))
	}

	if _, err := s.RecomputeChef(ctx, rating.ChefID); err != nil {
		return nil, err
	}
	return rating, nil
}

func submitOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyRated):
		return "already_rated"
	case errors.Is(err, domain.ErrOrderNotDelivered):
		return "not_delivered"
	case errors.Is(err, domain.ErrNoValidScores), errors.Is(err, domain.ErrInvalidScore):
		return "invalid_scores"
	case errors.Is(err, orderdomain.ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecomputeChef never increments: it rescans every rating, so concurrent
// submissions converge on the same value.
func (s *Service) RecomputeChef(ctx context.Context, chefID snowflake.ID) (*domain.Aggregate, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRatingRecompute(ctx, time.Since(start)) }()

	count, avg, err := s.repo.Aggregate(ctx, s.db, chefID)
	if err == nil {
		agg := &domain.Aggregate{ChefID: chefID, Rating: round2(avg), TotalRatings: count}
		if err = s.repo.UpdateChefAggregate(ctx, s.db, *agg); err == nil {
			return agg, nil
		}
	}

	s.log.Error("chef rating recompute failed",
		zap.String("chef_id", chefID.String()),
		zap.Error(err),
	)
	return nil, fmt.Errorf("%w: chef %s: %w", domain.ErrRecomputeFailed, chefID, err)
}

func (s *Service) ListByChef(ctx context.Context, chefID snowflake.ID) ([]domain.Rating, error) {
	return s.repo.ListByChef(ctx, s.db, chefID, chefListLimit)
}

func (s *Service) ListMine(ctx context.Context, clientID snowflake.ID) ([]domain.Rating, error) {
	return s.repo.ListByUser(ctx, s.db, clientID)
}
