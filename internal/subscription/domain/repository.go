package domain

import (
	"context"
	"time"

	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	// FindByIDForUpdate row-locks the subscription where the dialect supports it.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	ListSubscribers(ctx context.Context, db *gorm.DB, chefID snowflake.ID, statuses []Status) ([]Subscriber, error)
	// TransitionStatus moves the subscription from one status to another and
	// reports how many rows changed. Zero means another writer got there first.
	TransitionStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status, fields map[string]any) (int64, error)
	// InsertOrders skips rows that collide on (subscription_id, date, moment)
	// and returns the number actually inserted.
	InsertOrders(ctx context.Context, db *gorm.DB, orders []orderdomain.Order) (int64, error)
	CancelPendingOrders(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, now time.Time) (int64, error)
	// ListEnded returns subscriptions in status whose date_fin is before now.
	ListEnded(ctx context.Context, db *gorm.DB, status Status, now time.Time, limit int) ([]Subscription, error)
	RefreshSubscriberCount(ctx context.Context, db *gorm.DB, chefID snowflake.ID) error
	CountByStatus(ctx context.Context, db *gorm.DB, status Status) (int64, error)
}
