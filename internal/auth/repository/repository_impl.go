package repository

import (
	"context"
	"errors"

	"github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *repo) FindByResetTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*domain.User, error) {
	return r.findOne(ctx, db, "reset_token_hash = ?", tokenHash)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) ExistsMatricule(ctx context.Context, db *gorm.DB, matricule string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("matricule = ?", matricule).Count(&count).Error
	return count > 0, err
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *repo) ListByRole(ctx context.Context, db *gorm.DB, role domain.Role, limit int) ([]domain.User, error) {
	var users []domain.User
	q := db.WithContext(ctx).Where("role = ?", role).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) CountByRole(ctx context.Context, db *gorm.DB, role domain.Role) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
