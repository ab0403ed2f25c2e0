package subscription

import (
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
