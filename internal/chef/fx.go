package chef

import (
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/repository"
	"github.com/UknowEdy/chefetoile-backend/internal/chef/service"
	"go.uber.org/fx"
)

var Module = fx.Module("chef.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(func(s domain.Service) authdomain.ChefProfiles { return s }),
)
