package menu

import (
	"github.com/UknowEdy/chefetoile-backend/internal/menu/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/menu/service"
	"go.uber.org/fx"
)

var Module = fx.Module("menu.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
