package domain

import (
	"context"
	"time"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	MenuID    string `json:"menuId"`
	Formule   string `json:"formule"`
	PrixTotal int64  `json:"prixTotal"`
}

type ActivateRequest struct {
	SubscriptionID snowflake.ID
	Actor          authdomain.Actor
	Action         Action
}

type ActivationResult struct {
	OrdersGenerated int           `json:"ordersGenerated"`
	Status          Status        `json:"statut"`
	Subscription    *Subscription `json:"subscription"`
}

// Subscriber is a subscription joined with the client and menu it refers to.
type Subscriber struct {
	Subscription `gorm:"embedded"`

	ClientNom       string    `gorm:"->;column:client_nom" json:"clientNom"`
	ClientPrenom    string    `gorm:"->;column:client_prenom" json:"clientPrenom"`
	ClientEmail     string    `gorm:"->;column:client_email" json:"clientEmail"`
	ClientTelephone string    `gorm:"->;column:client_telephone" json:"clientTelephone"`
	ClientMatricule string    `gorm:"->;column:client_matricule" json:"clientMatricule"`
	PickupAddress   string    `gorm:"->;column:client_pickup_address" json:"pickupAddress"`
	MenuTitle       string    `gorm:"->;column:menu_title" json:"menuTitle"`
	MenuStartDate   time.Time `gorm:"->;column:menu_start_date" json:"menuStartDate"`
}

type LifecycleResult struct {
	Completed int `json:"completed"`
	Expired   int `json:"expired"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Create(ctx context.Context, clientID snowflake.ID, req CreateRequest) (*Subscription, error)
	Get(ctx context.Context, id snowflake.ID) (*Subscription, error)
	ListMine(ctx context.Context, clientID snowflake.ID) ([]Subscription, error)
	// ListChefSubscribers returns ACTIVE and PENDING_VALIDATION subscriptions.
	ListChefSubscribers(ctx context.Context, chefUserID snowflake.ID) ([]Subscriber, error)
	Cancel(ctx context.Context, clientID, id snowflake.ID) (*Subscription, error)
	Activate(ctx context.Context, req ActivateRequest) (*ActivationResult, error)
	// CompleteEnded closes subscriptions whose window ended before now.
	CompleteEnded(ctx context.Context, now time.Time, limit int) (LifecycleResult, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
