package platformmetrics

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("platform.metrics",
	fx.Provide(NewGauges),
	fx.Provide(NewPusher),
	fx.Provide(NewReporter),
	fx.Invoke(registerShutdown),
)

func registerShutdown(lc fx.Lifecycle, pusher Pusher) {
	closer, ok := pusher.(*OTLPPusher)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
}
