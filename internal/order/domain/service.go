package domain

import (
	"context"
	"io"

	"github.com/bwmarrin/snowflake"
)

// ChefOrder is an order with the client details a chef needs to deliver it.
type ChefOrder struct {
	Order `gorm:"embedded"`

	ClientNom       string `gorm:"->;column:client_nom" json:"clientNom"`
	ClientPrenom    string `gorm:"->;column:client_prenom" json:"clientPrenom"`
	ClientTelephone string `gorm:"->;column:client_telephone" json:"clientTelephone"`
	ClientMatricule string `gorm:"->;column:client_matricule" json:"clientMatricule"`
}

// ChefListRequest.Date is a local calendar day (YYYY-MM-DD).
type ChefListRequest struct {
	Date   string `form:"date"`
	Moment string `form:"moment"`
}

type UpdateStatusRequest struct {
	Statut    string  `json:"statut"`
	LivreurID *string `json:"livreurId"`
}

type AdminListRequest struct {
	ChefID string `form:"chefId"`
	UserID string `form:"userId"`
	Statut string `form:"statut"`
}

type ChefStats struct {
	Total    int64            `json:"total"`
	Today    int64            `json:"today"`
	ByStatus map[Status]int64 `json:"byStatus"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	ListMine(ctx context.Context, clientID snowflake.ID) ([]Order, error)
	ListForChef(ctx context.Context, chefUserID snowflake.ID, req ChefListRequest) ([]ChefOrder, error)
	UpdateStatus(ctx context.Context, chefUserID, orderID snowflake.ID, req UpdateStatusRequest) (*Order, error)
	ChefStats(ctx context.Context, chefUserID snowflake.ID) (*ChefStats, error)
	AdminList(ctx context.Context, req AdminListRequest) ([]Order, error)
	CountToday(ctx context.Context) (int64, error)
	// DeliverySheet renders the chef's orders of one day as a PDF.
	DeliverySheet(ctx context.Context, chefUserID snowflake.ID, date string) (io.Reader, error)
}
