package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, rating *Rating) error
	ExistsForOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (bool, error)
	// AttachToOrder sets orders.rating_id once and reports whether it did.
	AttachToOrder(ctx context.Context, db *gorm.DB, orderID, ratingID snowflake.ID) (bool, error)
	// Aggregate scans every rating of the chef.
	Aggregate(ctx context.Context, db *gorm.DB, chefID snowflake.ID) (count int64, mean float64, err error)
	UpdateChefAggregate(ctx context.Context, db *gorm.DB, agg Aggregate) error
	ListByChef(ctx context.Context, db *gorm.DB, chefID snowflake.ID, limit int) ([]Rating, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Rating, error)
}
