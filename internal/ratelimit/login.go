package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	"go.uber.org/zap"
)

const (
	keyLoginIP    = "auth:login:ip:%s"
	keyLoginEmail = "auth:login:email:%s"
)

// LoginLimiter throttles password attempts per client IP and per email.
// It is a no-op when Redis is not configured or the rate is zero.
type LoginLimiter struct {
	bucket  *TokenBucket
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewLoginLimiter(bucket *TokenBucket, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *LoginLimiter {
	if bucket == nil || cfg.AuthLoginRatePerMin <= 0 {
		return nil
	}
	return &LoginLimiter{
		bucket:  bucket,
		rate:    float64(cfg.AuthLoginRatePerMin) / 60,
		burst:   cfg.AuthLoginRatePerMin,
		log:     log.Named("ratelimit.login"),
		metrics: m,
	}
}

// Allow reports whether another attempt may proceed. Redis failures fail
// open so an outage never locks every user out.
func (l *LoginLimiter) Allow(ctx context.Context, ip, email string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}

	keys := make([]string, 0, 2)
	if ip = strings.TrimSpace(ip); ip != "" {
		keys = append(keys, sprintfKey(keyLoginIP, ip))
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		keys = append(keys, sprintfKey(keyLoginEmail, email))
	}

	for _, key := range keys {
		res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
		if err != nil {
			l.log.Warn("login rate limit check failed", zap.Error(err))
			return true, 0
		}
		if !res.Allowed {
			l.metrics.RecordRateLimitDenied(ctx, "auth.login", "bucket_empty")
			return false, res.RetryAfter
		}
	}
	return true, 0
}
