package platformmetrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sampleStats = admindomain.Stats{
	Chefs:               3,
	ActiveChefs:         2,
	SuspendedChefs:      1,
	Clients:             10,
	ActiveMenus:         2,
	ActiveSubscriptions: 7,
	OrdersToday:         12,
}

func TestRemoteWritePusherSendsSnappyProtobuf(t *testing.T) {
	var (
		mu      sync.Mutex
		request prompb.WriteRequest
		headers http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		decoded, err := snappy.Decode(nil, body)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		headers = r.Header.Clone()
		require.NoError(t, request.Unmarshal(decoded))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gauges := NewGauges()
	gauges.Set(sampleStats)

	pusher := NewRemoteWritePusher(srv.URL, "secret-token")
	pusher.now = func() time.Time { return time.UnixMilli(1_717_200_000_000) }
	require.NoError(t, pusher.Push(context.Background(), gauges.Registry()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "snappy", headers.Get("Content-Encoding"))
	assert.Equal(t, "Bearer secret-token", headers.Get("Authorization"))

	values := map[string]float64{}
	for _, ts := range request.Timeseries {
		require.Len(t, ts.Samples, 1)
		assert.Equal(t, int64(1_717_200_000_000), ts.Samples[0].Timestamp)
		for _, label := range ts.Labels {
			if label.Name == "__name__" {
				values[label.Value] = ts.Samples[0].Value
			}
		}
	}
	assert.Equal(t, 7.0, values["chefetoile_platform_subscriptions_active"])
	assert.Equal(t, 12.0, values["chefetoile_platform_orders_today"])
	assert.Equal(t, 1.0, values["chefetoile_platform_chefs_suspended"])
}

func TestRemoteWritePusherReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gauges := NewGauges()
	gauges.Set(sampleStats)
	err := NewRemoteWritePusher(srv.URL, "").Push(context.Background(), gauges.Registry())
	assert.ErrorContains(t, err, "502")
}

func TestPushgatewayPusherUsesJobAndGrouping(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gauges := NewGauges()
	gauges.Set(sampleStats)
	pusher := NewPushgatewayPusher(srv.URL, "chefetoile", map[string]string{"environment": "staging"})
	require.NoError(t, pusher.Push(context.Background(), gauges.Registry()))
	assert.Equal(t, "/metrics/job/chefetoile/environment/staging", path)
}

func TestNewPusherSelection(t *testing.T) {
	base := config.Config{AppName: "chefetoile", Environment: "test"}
	log := zap.NewNop()

	assert.Nil(t, NewPusher(base, log))

	cfg := base
	cfg.PlatformMetrics = config.PlatformMetricsConfig{Enabled: true, Exporter: "prometheus_remote_write", Endpoint: "https://metrics.example.com/api/v1/write"}
	assert.IsType(t, &RemoteWritePusher{}, NewPusher(cfg, log))

	cfg.PlatformMetrics.Exporter = "prometheus_pushgateway"
	assert.IsType(t, &PushgatewayPusher{}, NewPusher(cfg, log))

	cfg.PlatformMetrics.Exporter = "otlp"
	cfg.PlatformMetrics.Endpoint = "https://collector.example.com:4317"
	otlp, ok := NewPusher(cfg, log).(*OTLPPusher)
	require.True(t, ok)
	assert.Equal(t, "collector.example.com:4317", otlp.address)
	assert.True(t, otlp.secure)

	cfg.PlatformMetrics.Exporter = "statsd"
	assert.Nil(t, NewPusher(cfg, log))

	cfg.PlatformMetrics.Exporter = "prometheus_remote_write"
	cfg.PlatformMetrics.Endpoint = ""
	assert.Nil(t, NewPusher(cfg, log))
}

func TestBuildOTLPMetrics(t *testing.T) {
	gauges := NewGauges()
	gauges.Set(sampleStats)
	families, err := gauges.Registry().Gather()
	require.NoError(t, err)

	metrics := buildOTLPMetrics(families, 42)
	require.Len(t, metrics, len(families))
	for _, metric := range metrics {
		require.NotNil(t, metric.GetGauge(), metric.GetName())
		points := metric.GetGauge().GetDataPoints()
		require.Len(t, points, 1)
		assert.Equal(t, uint64(42), points[0].GetTimeUnixNano())
		if metric.GetName() == "chefetoile_platform_clients" {
			assert.Equal(t, 10.0, points[0].GetAsDouble())
		}
	}
}

type fakeStats struct {
	admindomain.Service
	calls int
}

func (f *fakeStats) Stats(context.Context) (*admindomain.Stats, error) {
	f.calls++
	stats := sampleStats
	return &stats, nil
}

type recordingPusher struct {
	names []string
}

func (p *recordingPusher) Push(_ context.Context, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if strings.HasPrefix(family.GetName(), "chefetoile_platform_") {
			p.names = append(p.names, family.GetName())
		}
	}
	return nil
}

func TestReporter(t *testing.T) {
	stats := &fakeStats{}
	pusher := &recordingPusher{}
	reporter := NewReporter(ReporterParams{Log: zap.NewNop(), Stats: stats, Gauges: NewGauges(), Pusher: pusher})

	require.True(t, reporter.Enabled())
	require.NoError(t, reporter.Report(context.Background()))
	assert.Equal(t, 1, stats.calls)
	assert.Len(t, pusher.names, 7)

	disabled := NewReporter(ReporterParams{Log: zap.NewNop(), Stats: stats, Gauges: NewGauges()})
	assert.False(t, disabled.Enabled())
	require.NoError(t, disabled.Report(context.Background()))
	assert.Equal(t, 1, stats.calls)
}
