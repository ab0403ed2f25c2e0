package rating

import (
	"github.com/UknowEdy/chefetoile-backend/internal/rating/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/rating/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rating.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
