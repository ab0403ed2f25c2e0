package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ChefFilter struct {
	ChefID snowflake.ID
	From   *time.Time
	To     *time.Time
	Moment Moment
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	ListForChef(ctx context.Context, db *gorm.DB, filter ChefFilter) ([]ChefOrder, error)
	// UpdateStatus applies fields only while the order is still in from.
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from Status, fields map[string]any) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, chefID snowflake.ID) (map[Status]int64, error)
	// CountBetween counts orders dated in [from, to). A zero chefID counts all chefs.
	CountBetween(ctx context.Context, db *gorm.DB, chefID snowflake.ID, from, to time.Time) (int64, error)
}
