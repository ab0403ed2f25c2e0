package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, chef *domain.Chef) error {
	return db.WithContext(ctx).Create(chef).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Chef, error) {
	return r.findOne(ctx, db, "chefs.id = ?", id)
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Chef, error) {
	return r.findOne(ctx, db, "chefs.user_id = ?", userID)
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Chef, error) {
	return r.findOne(ctx, db, "chefs.slug = ?", strings.ToLower(slug))
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.Chef, error) {
	var chef domain.Chef
	err := withMatricule(db.WithContext(ctx)).Where(query, args...).First(&chef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrChefNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chef, nil
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Chef{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Chef, error) {
	q := withMatricule(db.WithContext(ctx))
	if !filter.IncludeSuspended {
		q = q.Where("chefs.is_suspended = ?", false)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(chefs.name) LIKE ? OR LOWER(chefs.bio) LIKE ? OR LOWER(users.matricule) LIKE ? OR LOWER(users.email) LIKE ?",
			like, like, like, like,
		)
	}
	if quartier := strings.ToLower(strings.TrimSpace(filter.Quartier)); quartier != "" {
		q = q.Where("LOWER(chefs.quartier) LIKE ?", "%"+quartier+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var chefs []domain.Chef
	err := q.Order("chefs.rating DESC").Order("chefs.subscribers_count DESC").Order("chefs.id ASC").Find(&chefs).Error
	if err != nil {
		return nil, err
	}
	return chefs, nil
}

// profileColumns excludes rating and total_ratings, which only the rating
// aggregate recompute writes.
var profileColumns = []string{
	"name", "phone", "bio", "cuisine_type", "address", "quartier",
	"latitude", "longitude", "settings", "is_suspended", "statut", "updated_at",
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, chef *domain.Chef) error {
	tx := db.WithContext(ctx).Model(chef).Select(profileColumns).Updates(chef)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrChefNotFound
	}
	return nil
}

func withMatricule(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Chef{}).
		Select("chefs.*, users.matricule AS matricule").
		Joins("LEFT JOIN users ON users.id = chefs.user_id")
}
