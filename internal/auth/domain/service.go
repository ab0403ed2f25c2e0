package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Quartier string `json:"quartier"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

// AuthResult is returned by register and login. Token is the signed access token.
type AuthResult struct {
	User      *User     `json:"user"`
	ChefSlug  *string   `json:"chefSlug,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UpdatePickupPointRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	// CreateAccount is Register for administrators: it may create any role
	// and does not issue a token.
	CreateAccount(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	Me(ctx context.Context, userID snowflake.ID) (*User, error)
	UpdatePickupPoint(ctx context.Context, userID snowflake.ID, req UpdatePickupPointRequest) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ListClients(ctx context.Context, limit int) ([]User, error)
}

// ChefProfiles is the part of the chef service that account management needs.
type ChefProfiles interface {
	// CreateForUser creates the chef profile inside the registration transaction.
	CreateForUser(ctx context.Context, tx *gorm.DB, user *User, quartier string) (slug string, err error)
	// LookupByUserID returns the slug and suspension state, or ok=false when
	// the user has no chef profile.
	LookupByUserID(ctx context.Context, userID snowflake.ID) (slug string, suspended bool, ok bool, err error)
}
