package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/providers/pdf"
	"github.com/UknowEdy/chefetoile-backend/pkg/db/option"
	"github.com/UknowEdy/chefetoile-backend/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const adminListLimit = 200

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Meals *config.MealsConfigHolder
	Repo  domain.Repository
	Chefs chefdomain.Repository
	PDF   pdf.Provider
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	meals *config.MealsConfigHolder
	repo  domain.Repository
	store repository.Repository[domain.Order]
	chefs chefdomain.Repository
	pdf   pdf.Provider
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		clock: p.Clock,
		meals: p.Meals,
		repo:  p.Repo,
		store: repository.ProvideStore[domain.Order](p.DB),
		chefs: p.Chefs,
		pdf:   p.PDF,
	}
}

func (s *Service) ListMine(ctx context.Context, clientID snowflake.ID) ([]domain.Order, error) {
	rows, err := s.store.Find(ctx, &domain.Order{UserID: clientID},
		option.WithSortBy(option.QuerySortBy{SortBy: "date", OrderBy: "asc", Allow: map[string]bool{"date": true}}),
	)
	if err != nil {
		return nil, err
	}
	return deref(rows), nil
}

func (s *Service) ListForChef(ctx context.Context, chefUserID snowflake.ID, req domain.ChefListRequest) ([]domain.ChefOrder, error) {
	chef, err := s.chefs.FindByUserID(ctx, s.db, chefUserID)
	if err != nil {
		return nil, err
	}

	filter := domain.ChefFilter{ChefID: chef.ID}
	if raw := strings.TrimSpace(req.Date); raw != "" {
		from, to, err := s.dayRange(raw)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}
	if raw := strings.TrimSpace(req.Moment); raw != "" {
		moment, ok := domain.ParseMoment(strings.ToUpper(raw))
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMoment, raw)
		}
		filter.Moment = moment
	}
	return s.repo.ListForChef(ctx, s.db, filter)
}

// UpdateStatus moves an order of the calling chef one step along the
// delivery flow, or cancels it.
func (s *Service) UpdateStatus(ctx context.Context, chefUserID, orderID snowflake.ID, req domain.UpdateStatusRequest) (*domain.Order, error) {
	next, ok := domain.ParseStatus(strings.ToUpper(strings.TrimSpace(req.Statut)))
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, req.Statut)
	}

	var livreurID *snowflake.ID
	if req.LivreurID != nil && strings.TrimSpace(*req.LivreurID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(*req.LivreurID))
		if err != nil {
			return nil, fmt.Errorf("%w: livreurId", domain.ErrInvalidID)
		}
		livreurID = &id
	}

	chef, err := s.chefs.FindByUserID(ctx, s.db, chefUserID)
	if err != nil {
		return nil, err
	}

	var out *domain.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.ChefID != chef.ID {
			return fmt.Errorf("%w: order %s", domain.ErrForbidden, orderID)
		}
		if !order.Statut.CanTransition(next) {
			return fmt.Errorf("%w: order %s %s -> %s", domain.ErrInvalidTransition, orderID, order.Statut, next)
		}

		now := s.clock.Now()
		fields := map[string]any{"statut": next, "updated_at": now}
		if livreurID != nil {
			fields["livreur_id"] = *livreurID
		}
		if next == domain.StatusDelivered {
			fields["date_livraison"] = now
		}
		n, err := s.repo.UpdateStatus(ctx, tx, orderID, order.Statut, fields)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: order %s changed concurrently", domain.ErrInvalidTransition, orderID)
		}
		out, err = s.repo.FindByID(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("statut", string(next)),
	)
	return out, nil
}

func (s *Service) ChefStats(ctx context.Context, chefUserID snowflake.ID) (*domain.ChefStats, error) {
	chef, err := s.chefs.FindByUserID(ctx, s.db, chefUserID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountByStatus(ctx, s.db, chef.ID)
	if err != nil {
		return nil, err
	}
	from, to := s.today()
	today, err := s.repo.CountBetween(ctx, s.db, chef.ID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &domain.ChefStats{Today: today, ByStatus: byStatus}
	for _, n := range byStatus {
		stats.Total += n
	}
	return stats, nil
}

func (s *Service) AdminList(ctx context.Context, req domain.AdminListRequest) ([]domain.Order, error) {
	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{SortBy: "date", Allow: map[string]bool{"date": true}}),
		option.WithLimit(adminListLimit),
	}
	for field, raw := range map[string]string{"chef_id": req.ChefID, "user_id": req.UserID} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, field)
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: field, Operator: option.EQ, Value: id}))
	}
	if raw := strings.TrimSpace(req.Statut); raw != "" {
		status, ok := domain.ParseStatus(strings.ToUpper(raw))
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "statut", Operator: option.EQ, Value: status}))
	}

	rows, err := s.store.Find(ctx, &domain.Order{}, opts...)
	if err != nil {
		return nil, err
	}
	return deref(rows), nil
}

func (s *Service) CountToday(ctx context.Context) (int64, error) {
	from, to := s.today()
	return s.repo.CountBetween(ctx, s.db, 0, from, to)
}

func (s *Service) DeliverySheet(ctx context.Context, chefUserID snowflake.ID, date string) (io.Reader, error) {
	chef, err := s.chefs.FindByUserID(ctx, s.db, chefUserID)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if strings.TrimSpace(date) == "" {
		from, to = s.today()
	} else if from, to, err = s.dayRange(date); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListForChef(ctx, s.db, domain.ChefFilter{ChefID: chef.ID, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	sheet := pdf.DeliverySheet{
		ChefName: chef.Name,
		Date:     from.Format("02/01/2006"),
		Moment:   "MIDI / SOIR",
	}
	for _, o := range orders {
		sheet.Lines = append(sheet.Lines, pdf.DeliveryLine{
			Client:    strings.TrimSpace(o.ClientPrenom + " " + o.ClientNom),
			Matricule: o.ClientMatricule,
			Telephone: o.ClientTelephone,
			Plat:      fmt.Sprintf("%s · %s", o.Moment, o.Repas),
			Adresse:   o.DeliveryPoint.Address,
			Statut:    string(o.Statut),
		})
	}
	return s.pdf.GenerateDeliverySheet(ctx, sheet)
}

// dayRange returns [00:00, 24:00) of a local calendar day.
func (s *Service) dayRange(raw string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), s.meals.Get().Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, raw)
	}
	return day, day.AddDate(0, 0, 1), nil
}

func (s *Service) today() (time.Time, time.Time) {
	local := s.clock.Now().In(s.meals.Get().Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start, start.AddDate(0, 0, 1)
}

func deref(rows []*domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out
}
