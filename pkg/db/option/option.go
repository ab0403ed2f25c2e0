package option

import (
	"fmt"
	"strings"

	"github.com/UknowEdy/chefetoile-backend/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type optionFunc func(db *gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

const (
	defaultPageSize = 10
	maxPageSize     = 250
)

// ApplyPagination applies an offset-free limit. The page token is the last
// seen id, so rows are expected to be ordered by id.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		if page.PageToken != "" {
			if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor.ID != "" {
				db = db.Where("id < ?", cursor.ID)
			}
		}
		// one extra row tells the caller whether another page exists
		return db.Limit(size + 1)
	})
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// QuerySortBy restricts ordering to an allowlist of columns.
type QuerySortBy struct {
	SortBy  string
	OrderBy string
	Allow   map[string]bool
}

func WithQuerySortBy(sortBy, orderBy string, allow map[string]bool) QuerySortBy {
	return QuerySortBy{SortBy: sortBy, OrderBy: orderBy, Allow: allow}
}

func WithSortBy(sort QuerySortBy) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		column := strings.ToLower(strings.TrimSpace(sort.SortBy))
		if !sort.Allow[column] {
			if !sort.Allow["created_at"] {
				return db
			}
			column = "created_at"
		}
		direction := "DESC"
		if strings.EqualFold(strings.TrimSpace(sort.OrderBy), "asc") {
			direction = "ASC"
		}
		return db.Order(fmt.Sprintf("%s %s", column, direction))
	})
}

type Operator string

const (
	EQ  Operator = "="
	NEQ Operator = "<>"
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
	IN  Operator = "IN"
)

// Condition is a single filter on a trusted column name.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func ApplyOperator(cond Condition) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(cond.Field)
		if field == "" || cond.Value == nil {
			return db
		}
		switch cond.Operator {
		case IN:
			return db.Where(fmt.Sprintf("%s IN ?", field), cond.Value)
		case EQ, NEQ, GT, GTE, LT, LTE:
			return db.Where(fmt.Sprintf("%s %s ?", field, cond.Operator), cond.Value)
		default:
			return db
		}
	})
}
