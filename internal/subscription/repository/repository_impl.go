package repository

import (
	"context"
	"errors"
	"time"

	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).Create(sub).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Subscription, error) {
	return r.find(db.WithContext(ctx), id)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Subscription, error) {
	return r.find(db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repo) find(q *gorm.DB, id snowflake.ID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := q.Where("id = ?", id).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

const subscriberColumns = `subscriptions.*,
	users.nom AS client_nom,
	users.prenom AS client_prenom,
	users.email AS client_email,
	users.telephone AS client_telephone,
	users.matricule AS client_matricule,
	users.pickup_address AS client_pickup_address,
	menus.title AS menu_title,
	menus.start_date AS menu_start_date`

func (r *repo) ListSubscribers(ctx context.Context, db *gorm.DB, chefID snowflake.ID, statuses []domain.Status) ([]domain.Subscriber, error) {
	var out []domain.Subscriber
	err := db.WithContext(ctx).Table("subscriptions").
		Select(subscriberColumns).
		Joins("LEFT JOIN users ON users.id = subscriptions.user_id").
		Joins("LEFT JOIN menus ON menus.id = subscriptions.menu_id").
		Where("subscriptions.chef_id = ? AND subscriptions.statut IN ?", chefID, statuses).
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) TransitionStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to domain.Status, fields map[string]any) (int64, error) {
	updates := map[string]any{"statut": to}
	for k, v := range fields {
		updates[k] = v
	}
	res := db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("id = ? AND statut = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertOrders(ctx context.Context, db *gorm.DB, orders []orderdomain.Order) (int64, error) {
	if len(orders) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&orders)
	return res.RowsAffected, res.Error
}

func (r *repo) CancelPendingOrders(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&orderdomain.Order{}).
		Where("subscription_id = ? AND statut = ?", subscriptionID, orderdomain.StatusPending).
		Updates(map[string]any{"statut": orderdomain.StatusCancelled, "updated_at": now})
	return res.RowsAffected, res.Error
}

func (r *repo) ListEnded(ctx context.Context, db *gorm.DB, status domain.Status, now time.Time, limit int) ([]domain.Subscription, error) {
	q := db.WithContext(ctx).
		Where("statut = ? AND date_fin < ?", status, now.UTC()).
		Order("date_fin ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var subs []domain.Subscription
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// RefreshSubscriberCount recomputes chefs.subscribers_count as the number of
// distinct clients with an ACTIVE subscription.
func (r *repo) RefreshSubscriberCount(ctx context.Context, db *gorm.DB, chefID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE chefs SET subscribers_count = (
			SELECT COUNT(DISTINCT user_id) FROM subscriptions WHERE chef_id = ? AND statut = ?
		) WHERE id = ?`,
		chefID, domain.StatusActive, chefID,
	).Error
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Subscription{}).Where("statut = ?", status).Count(&count).Error
	return count, err
}
