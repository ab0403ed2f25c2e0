package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// MaxCommentLength is counted in characters.
const MaxCommentLength = 1000

type SubmitRequest struct {
	ClientID snowflake.ID   `json:"-"`
	OrderID  snowflake.ID   `json:"orderId"`
	Scores   map[string]any `json:"notes"`
	Comment  string         `json:"commentaire"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Rating, error)
	// RecomputeChef rebuilds the chef aggregate from every stored rating.
	RecomputeChef(ctx context.Context, chefID snowflake.ID) (*Aggregate, error)
	ListByChef(ctx context.Context, chefID snowflake.ID) ([]Rating, error)
	ListMine(ctx context.Context, clientID snowflake.ID) ([]Rating, error)
}
