package domain

import (
	"context"
	"errors"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/bwmarrin/snowflake"
)

// Stats is the platform dashboard.
type Stats struct {
	Chefs               int64 `json:"chefs"`
	ActiveChefs         int64 `json:"activeChefs"`
	SuspendedChefs      int64 `json:"suspendedChefs"`
	Clients             int64 `json:"clients"`
	ActiveMenus         int64 `json:"activeMenus"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
	OrdersToday         int64 `json:"ordersToday"`
}

type SuspendRequest struct {
	Actor     authdomain.Actor `json:"-"`
	ChefID    snowflake.ID     `json:"-"`
	Suspended bool             `json:"isSuspended"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	ListChefs(ctx context.Context) ([]chefdomain.Chef, error)
	ListClients(ctx context.Context) ([]authdomain.User, error)
	ListOrders(ctx context.Context, req orderdomain.AdminListRequest) ([]orderdomain.Order, error)
	ListMenus(ctx context.Context) ([]menudomain.Menu, error)
	SetChefSuspended(ctx context.Context, req SuspendRequest) (*chefdomain.Chef, error)
	RecomputeChefRating(ctx context.Context, actor authdomain.Actor, chefID snowflake.ID) (*ratingdomain.Aggregate, error)
}

var ErrNotAdmin = errors.New("admin_role_required")
