package auth

import (
	"github.com/UknowEdy/chefetoile-backend/internal/auth/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/service"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/session"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(token.NewIssuer),
	fx.Provide(service.NewService),
	session.Module,
)
