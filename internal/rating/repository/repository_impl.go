package repository

import (
	"context"

	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, rating *domain.Rating) error {
	return db.WithContext(ctx).Create(rating).Error
}

func (r *repo) ExistsForOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Rating{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

func (r *repo) AttachToOrder(ctx context.Context, db *gorm.DB, orderID, ratingID snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Model(&orderdomain.Order{}).
		Where("id = ? AND rating_id IS NULL", orderID).
		Update("rating_id", ratingID)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) Aggregate(ctx context.Context, db *gorm.DB, chefID snowflake.ID) (int64, float64, error) {
	var row struct {
		Total   int64
		Average float64
	}
	err := db.WithContext(ctx).Model(&domain.Rating{}).
		Select("COUNT(*) AS total, COALESCE(AVG(moyenne_globale), 0) AS average").
		Where("chef_id = ?", chefID).
		Scan(&row).Error
	return row.Total, row.Average, err
}

// UpdateChefAggregate writes only rating and total_ratings.
func (r *repo) UpdateChefAggregate(ctx context.Context, db *gorm.DB, agg domain.Aggregate) error {
	return db.WithContext(ctx).Model(&chefdomain.Chef{}).
		Where("id = ?", agg.ChefID).
		UpdateColumns(map[string]any{
			"rating":        agg.Rating,
			"total_ratings": agg.TotalRatings,
		}).Error
}

func (r *repo) ListByChef(ctx context.Context, db *gorm.DB, chefID snowflake.ID, limit int) ([]domain.Rating, error) {
	q := db.WithContext(ctx).Where("chef_id = ?", chefID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Rating
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Rating, error) {
	var out []domain.Rating
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
