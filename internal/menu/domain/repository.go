package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, menu *Menu) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Menu, error)
	ListByChef(ctx context.Context, db *gorm.DB, chefID snowflake.ID, activeOnly bool) ([]Menu, error)
	ListAll(ctx context.Context, db *gorm.DB, limit int) ([]Menu, error)
	DeactivateOthers(ctx context.Context, db *gorm.DB, chefID, keepID snowflake.ID) error
	UpdateHeader(ctx context.Context, db *gorm.DB, menu *Menu) error
	ReplaceItems(ctx context.Context, db *gorm.DB, menuID snowflake.ID, items []MenuItem) error
	CountSubscriptions(ctx context.Context, db *gorm.DB, menuID snowflake.ID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
