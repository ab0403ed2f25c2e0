package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search           string
	Quartier         string
	IncludeSuspended bool
	Limit            int
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, chef *Chef) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Chef, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Chef, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Chef, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Chef, error)
	Save(ctx context.Context, db *gorm.DB, chef *Chef) error
}
