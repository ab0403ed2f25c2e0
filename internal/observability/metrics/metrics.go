package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	activations      metric.Int64Counter
	ordersGenerated  metric.Int64Counter
	ratingsSubmitted metric.Int64Counter
	ratingRecompute  metric.Float64Histogram
	rateLimitDenied  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "chefetoile"
	}
	meter := provider.Meter(name)

	activations, err := meter.Int64Counter("chefetoile_subscription_activations_total")
	if err != nil {
		return nil, err
	}
	ordersGenerated, err := meter.Int64Counter("chefetoile_orders_generated_total")
	if err != nil {
		return nil, err
	}
	ratingsSubmitted, err := meter.Int64Counter("chefetoile_ratings_submitted_total")
	if err != nil {
		return nil, err
	}
	ratingRecompute, err := meter.Float64Histogram("chefetoile_chef_rating_recompute_seconds")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("chefetoile_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		activations:      activations,
		ordersGenerated:  ordersGenerated,
		ratingsSubmitted: ratingsSubmitted,
		ratingRecompute:  ratingRecompute,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// NewNoop returns instruments backed by the noop provider.
func NewNoop() *Metrics {
	m, _ := New(Config{}, noop.NewMeterProvider())
	return m
}

// RecordActivation counts activation outcomes (validated, rejected, already_active, error).
func (m *Metrics) RecordActivation(ctx context.Context, result string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("result", strings.TrimSpace(result)))
	m.activations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordOrdersGenerated adds the orders produced by one activation.
func (m *Metrics) RecordOrdersGenerated(ctx context.Context, formule string, count int) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("formule", strings.TrimSpace(formule)))
	m.ordersGenerated.Add(ctx, int64(count), metric.WithAttributes(attrs...))
}

// RecordRatingSubmitted counts rating submissions by outcome.
func (m *Metrics) RecordRatingSubmitted(ctx context.Context, result string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("result", strings.TrimSpace(result)))
	m.ratingsSubmitted.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// ObserveRatingRecompute records the duration of a full chef aggregate recompute.
func (m *Metrics) ObserveRatingRecompute(ctx context.Context, duration time.Duration) {
	if m == nil {
		return
	}
	m.ratingRecompute.Record(ctx, duration.Seconds())
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"result":      {},
	"formule":     {},
	"moment":      {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
// User, chef and order ids never become labels.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
