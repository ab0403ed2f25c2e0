package authorization

import (
	"context"
	"errors"

	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks
type Service interface {
	// Authorize returns ErrForbidden when the actor's role grants no policy
	// for the object and action.
	Authorize(ctx context.Context, actor authdomain.Actor, object string, action string) error
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
