package providers

import (
	"github.com/UknowEdy/chefetoile-backend/internal/providers/email"
	"github.com/UknowEdy/chefetoile-backend/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
