package repository

import (
	"context"

	"github.com/UknowEdy/chefetoile-backend/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic gorm-backed store for simple entities. Lookups
// that find nothing return nil, nil.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID int64, resource any) error
	Delete(ctx context.Context, resourceID int64) error
	Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
