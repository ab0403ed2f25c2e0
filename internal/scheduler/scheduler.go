package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	obscontext "github.com/UknowEdy/chefetoile-backend/internal/observability/context"
	obsmetrics "github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	"github.com/UknowEdy/chefetoile-backend/internal/platformmetrics"
	"github.com/UknowEdy/chefetoile-backend/internal/ratelimit"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/UknowEdy/chefetoile-backend/pkg/telemetry/correlation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	JobSubscriptionLifecycle = "subscription_lifecycle"
	JobPlatformMetrics       = "platform_metrics"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	Log             *zap.Logger
	Clock           clock.Clock
	SubscriptionSvc subscriptiondomain.Service
	Reporter        *platformmetrics.Reporter    `optional:"true"`
	Locker          *ratelimit.Locker            `optional:"true"`
	Metrics         *obsmetrics.SchedulerMetrics `optional:"true"`
	Config          Config                       `optional:"true"`
}

type Scheduler struct {
	log             *zap.Logger
	cfg             Config
	clock           clock.Clock
	subscriptionSvc subscriptiondomain.Service
	reporter        *platformmetrics.Reporter
	locker          *ratelimit.Locker
	metrics         *obsmetrics.SchedulerMetrics

	mu      sync.Mutex
	lastRun map[string]time.Time
}

type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context, run *jobRun) error
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.SubscriptionSvc == nil {
		return nil, ErrInvalidConfig
	}
	schedMetrics := p.Metrics
	if schedMetrics == nil {
		schedMetrics = obsmetrics.Scheduler()
	}
	return &Scheduler{
		log:             p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:             p.Config.withDefaults(),
		clock:           p.Clock,
		subscriptionSvc: p.SubscriptionSvc,
		reporter:        p.Reporter,
		locker:          p.Locker,
		metrics:         schedMetrics,
		lastRun:         map[string]time.Time{},
	}, nil
}

func (s *Scheduler) jobs() []job {
	jobs := []job{
		{name: JobSubscriptionLifecycle, every: s.cfg.RunInterval, run: s.SubscriptionLifecycleJob},
	}
	if s.reporter.Enabled() {
		jobs = append(jobs, job{name: JobPlatformMetrics, every: s.cfg.MetricsInterval, run: s.PlatformMetricsJob})
	}
	return jobs
}

// RunOnce runs every enabled job whose interval has elapsed.
func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error
	for _, j := range s.jobs() {
		if !s.isJobEnabled(j.name) || !s.due(j) {
			continue
		}
		err = errors.Join(err, s.runJob(parent, j.name, j.run))
	}
	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()
	nextRun := time.Now().Add(s.cfg.RunInterval)

	for {
		if lag := time.Since(nextRun); lag > 0 {
			s.metrics.ObserveRunLoopLag(lag)
		}
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}
		nextRun = nextRun.Add(s.cfg.RunInterval)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context, run *jobRun) error) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	ctx, correlationID := correlation.EnsureCorrelationID(ctx)
	ctx = obscontext.WithRequestID(ctx, correlationID)
	ctx = obscontext.WithActor(ctx, "SYSTEM", "scheduler")

	key := ratelimit.SchedulerJobKey(name)
	token, acquired, err := s.locker.TryLock(ctx, key, s.cfg.LockTTL)
	if err != nil {
		s.logger(ctx).Warn("scheduler lock unavailable, running unguarded",
			zap.String("job", name),
			zap.Error(err),
		)
		acquired = true
	}
	if !acquired {
		s.metrics.IncBatchDeferred(name, obsmetrics.SchedulerBatchDeferredReasonLockHeld)
		s.logger(ctx).Debug("scheduler.job.skipped", zap.String("job", name), zap.String("reason", "lock_held"))
		return nil
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger(ctx).Warn("scheduler lock release failed", zap.String("job", name), zap.Error(err))
		}
	}()

	run := &jobRun{job: name, runID: correlationID, batchSize: s.cfg.BatchSize, startedAt: s.clock.Now()}
	s.markRun(name)
	s.logJobStart(ctx, run)
	s.metrics.IncJobRun(name)

	start := time.Now()
	err = fn(ctx, run)
	s.metrics.ObserveJobDuration(name, time.Since(start))
	if err != nil {
		run.IncError()
	}
	s.logJobFinish(ctx, run)
	if err == nil {
		return nil
	}

	s.metrics.IncJobError(name, err)
	// A deadline is a soft timeout: the next tick continues the work.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.metrics.IncJobTimeout(name)
		s.logger(ctx).Warn("job timed out",
			zap.String("job", name),
			zap.Duration("timeout", s.cfg.JobTimeout),
			zap.Error(err),
		)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// SubscriptionLifecycleJob completes and expires subscriptions whose end
// date has passed, one batch at a time until a short batch.
func (s *Scheduler) SubscriptionLifecycleJob(ctx context.Context, run *jobRun) error {
	now := s.clock.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := s.subscriptionSvc.CompleteEnded(ctx, now, s.cfg.BatchSize)
		processed := result.Completed + result.Expired
		run.AddProcessed(processed)
		s.metrics.AddBatchProcessed(JobSubscriptionLifecycle, "subscriptions", processed)
		if err != nil {
			s.logSchedulerError(ctx, run, "scheduler.subscription.lifecycle.failed", err)
			return err
		}
		if result.Completed < s.cfg.BatchSize && result.Expired < s.cfg.BatchSize {
			return nil
		}
	}
}

func (s *Scheduler) PlatformMetricsJob(ctx context.Context, run *jobRun) error {
	if err := s.reporter.Report(ctx); err != nil {
		s.logSchedulerError(ctx, run, "scheduler.platform_metrics.push.failed", err)
		return err
	}
	run.AddProcessed(1)
	return nil
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if strings.EqualFold(enabled, jobName) {
			return true
		}
	}
	return false
}

func (s *Scheduler) due(j job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastRun[j.name]
	return !ok || !s.clock.Now().Before(last.Add(j.every))
}

func (s *Scheduler) markRun(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun[name] = s.clock.Now()
}
