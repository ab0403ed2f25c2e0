package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ItemInput struct {
	Midi string `json:"midi"`
	Soir string `json:"soir"`
}

// CreateMenuRequest.StartDate accepts YYYY-MM-DD or RFC 3339.
type CreateMenuRequest struct {
	StartDate string      `json:"startDate"`
	Title     string      `json:"title"`
	Items     []ItemInput `json:"items"`
	IsActive  *bool       `json:"isActive"`
}

type UpdateMenuRequest struct {
	StartDate *string      `json:"startDate"`
	Title     *string      `json:"title"`
	Items     *[]ItemInput `json:"items"`
	IsActive  *bool        `json:"isActive"`
}

// DeleteResult reports whether the menu was only deactivated because
// subscriptions still reference it.
type DeleteResult struct {
	Deactivated bool `json:"deactivated"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	CreateWeekly(ctx context.Context, chefUserID snowflake.ID, req CreateMenuRequest) (*Menu, error)
	Update(ctx context.Context, chefUserID, menuID snowflake.ID, req UpdateMenuRequest) (*Menu, error)
	Delete(ctx context.Context, chefUserID, menuID snowflake.ID) (DeleteResult, error)
	Get(ctx context.Context, id snowflake.ID) (*Menu, error)
	ListByChef(ctx context.Context, chefID snowflake.ID) ([]Menu, error)
	ListMine(ctx context.Context, chefUserID snowflake.ID) ([]Menu, error)
	// Current is the chef's latest active menu.
	Current(ctx context.Context, chefID snowflake.ID) (*Menu, error)
	ListAll(ctx context.Context, limit int) ([]Menu, error)
}
