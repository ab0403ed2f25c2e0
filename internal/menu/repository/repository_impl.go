package repository

import (
	"context"
	"errors"

	"github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("menu_items.position ASC")
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, menu *domain.Menu) error {
	return db.WithContext(ctx).Create(menu).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Menu, error) {
	var menu domain.Menu
	err := db.WithContext(ctx).Preload("Items", orderedItems).Where("id = ?", id).First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *repo) ListByChef(ctx context.Context, db *gorm.DB, chefID snowflake.ID, activeOnly bool) ([]domain.Menu, error) {
	q := db.WithContext(ctx).Preload("Items", orderedItems).Where("chef_id = ?", chefID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var menus []domain.Menu
	if err := q.Order("start_date DESC").Order("id DESC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB, limit int) ([]domain.Menu, error) {
	q := db.WithContext(ctx).Preload("Items", orderedItems).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var menus []domain.Menu
	if err := q.Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *repo) DeactivateOthers(ctx context.Context, db *gorm.DB, chefID, keepID snowflake.ID) error {
	return db.WithContext(ctx).Model(&domain.Menu{}).
		Where("chef_id = ? AND id <> ? AND is_active = ?", chefID, keepID, true).
		Update("is_active", false).Error
}

func (r *repo) UpdateHeader(ctx context.Context, db *gorm.DB, menu *domain.Menu) error {
	return db.WithContext(ctx).Model(menu).
		Select("title", "start_date", "end_date", "is_active", "updated_at").
		Updates(menu).Error
}

func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, menuID snowflake.ID, items []domain.MenuItem) error {
	if err := db.WithContext(ctx).Where("menu_id = ?", menuID).Delete(&domain.MenuItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

// CountSubscriptions reads the subscriptions table directly; the subscription
// package depends on menus, not the other way round.
func (r *repo) CountSubscriptions(ctx context.Context, db *gorm.DB, menuID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("subscriptions").Where("menu_id = ?", menuID).Count(&count).Error
	return count, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := db.WithContext(ctx).Where("menu_id = ?", id).Delete(&domain.MenuItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Menu{}).Error
}
