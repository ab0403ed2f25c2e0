package order

import (
	"github.com/UknowEdy/chefetoile-backend/internal/order/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
