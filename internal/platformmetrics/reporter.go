package platformmetrics

import (
	"context"
	"time"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ReporterParams struct {
	fx.In

	Log    *zap.Logger
	Stats  admindomain.Service
	Gauges *Gauges
	Pusher Pusher `optional:"true"`
}

// Reporter refreshes the platform gauges from the admin dashboard and pushes
// them. It is driven by the scheduler.
type Reporter struct {
	log    *zap.Logger
	stats  admindomain.Service
	gauges *Gauges
	pusher Pusher
}

func NewReporter(p ReporterParams) *Reporter {
	return &Reporter{
		log:    p.Log.Named("platformmetrics"),
		stats:  p.Stats,
		gauges: p.Gauges,
		pusher: p.Pusher,
	}
}

// Enabled reports whether a pusher is configured.
func (r *Reporter) Enabled() bool {
	return r != nil && r.pusher != nil
}

func (r *Reporter) Report(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	stats, err := r.stats.Stats(ctx)
	if err != nil {
		return err
	}
	r.gauges.Set(*stats)

	start := time.Now()
	if err := r.pusher.Push(ctx, r.gauges.Registry()); err != nil {
		return err
	}
	r.log.Debug("platform metrics pushed", zap.Duration("took", time.Since(start)))
	return nil
}

func nowUnixNano() uint64 {
	return uint64(time.Now().UnixNano())
}
