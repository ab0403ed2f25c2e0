package domain

import (
	"context"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/bwmarrin/snowflake"
)

type ListRequest struct {
	Search   string
	Quartier string
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	PrixMidi           *int64          `json:"prixMidi"`
	PrixSoir           *int64          `json:"prixSoir"`
	PrixComplet        *int64          `json:"prixComplet"`
	PreparationAddress *string         `json:"preparationAddress"`
	JoursService       map[string]bool `json:"joursService"`
	RayonLivraison     *int            `json:"rayonLivraison"`
	HorairesLivraison  *string         `json:"horairesLivraison"`
}

// UpdateProfileRequest never carries rating, totals, statut or suspension;
// those are owned by the rating engine and the admin surface.
type UpdateProfileRequest struct {
	Name               *string        `json:"name"`
	Phone              *string        `json:"phone"`
	Bio                *string        `json:"bio"`
	CuisineType        *string        `json:"cuisineType"`
	Address            *string        `json:"address"`
	Quartier           *string        `json:"quartier"`
	Latitude           *float64       `json:"latitude"`
	Longitude          *float64       `json:"longitude"`
	PreparationAddress *string        `json:"preparationAddress"`
	Settings           *SettingsPatch `json:"settings"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	authdomain.ChefProfiles

	GetByID(ctx context.Context, id snowflake.ID) (*Chef, error)
	GetByUserID(ctx context.Context, userID snowflake.ID) (*Chef, error)
	// GetBySlug returns public, non-suspended profiles only.
	GetBySlug(ctx context.Context, slug string) (*Chef, error)
	List(ctx context.Context, req ListRequest) ([]Chef, error)
	ListAll(ctx context.Context, limit int) ([]Chef, error)
	UpdateProfile(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) (*Chef, error)
	SetSuspended(ctx context.Context, chefID snowflake.ID, suspended bool) (*Chef, error)
}
