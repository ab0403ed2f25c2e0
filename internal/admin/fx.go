package admin

import (
	"github.com/UknowEdy/chefetoile-backend/internal/admin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("admin.service",
	fx.Provide(service.NewService),
)
