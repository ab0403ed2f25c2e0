package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindByResetTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*User, error)
	ExistsMatricule(ctx context.Context, db *gorm.DB, matricule string) (bool, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	ListByRole(ctx context.Context, db *gorm.DB, role Role, limit int) ([]User, error)
	CountByRole(ctx context.Context, db *gorm.DB, role Role) (int64, error)
}
