package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) ListForChef(ctx context.Context, db *gorm.DB, filter domain.ChefFilter) ([]domain.ChefOrder, error) {
	q := db.WithContext(ctx).Table("orders").
		Select(`orders.*,
			users.nom AS client_nom,
			users.prenom AS client_prenom,
			users.telephone AS client_telephone,
			users.matricule AS client_matricule`).
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Where("orders.chef_id = ?", filter.ChefID)

	if filter.From != nil {
		q = q.Where("orders.date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("orders.date < ?", filter.To.UTC())
	}
	if filter.Moment != "" {
		q = q.Where("orders.moment = ?", filter.Moment)
	}

	var out []domain.ChefOrder
	if err := q.Order("orders.date ASC").Order("orders.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from domain.Status, fields map[string]any) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND statut = ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, chefID snowflake.ID) (map[domain.Status]int64, error) {
	var rows []struct {
		Statut domain.Status
		Total  int64
	}
	err := db.WithContext(ctx).Model(&domain.Order{}).
		Select("statut, COUNT(*) AS total").
		Where("chef_id = ?", chefID).
		Group("statut").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Statut] = row.Total
	}
	return out, nil
}

func (r *repo) CountBetween(ctx context.Context, db *gorm.DB, chefID snowflake.ID, from, to time.Time) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Order{}).Where("date >= ? AND date < ?", from.UTC(), to.UTC())
	if chefID != 0 {
		q = q.Where("chef_id = ?", chefID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
