package observability

import (
	"testing"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func clearObservabilityEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "OTEL_ENABLED", "OTEL_SDK_DISABLED", "DEPLOYMENT_ENV",
		"OTEL_SERVICE_NAME", "SERVICE_VERSION", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_PROTOCOL", "OTEL_EXPORTER_OTLP_TRACES_PROTOCOL",
		"OTEL_TRACES_SAMPLER_ARG", "OTEL_SAMPLING_RATIO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearObservabilityEnv(t)

	cfg := LoadConfig(config.Config{AppName: "chefetoile", Environment: "production", AppVersion: "1.2.3", OTLPEndpoint: "collector:4317"})

	assert.Equal(t, "chefetoile", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.OtelEnabled)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigStandardOtelVariables(t *testing.T) {
	clearObservabilityEnv(t)
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "chefetoile-api")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	cfg := LoadConfig(config.Config{AppName: "chefetoile", Environment: "development"})

	assert.Equal(t, "chefetoile-api", cfg.ServiceName)
	assert.Equal(t, "http/protobuf", cfg.OtelExporterProtocol)
	assert.Equal(t, 0.5, cfg.OtelSamplingRatio)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.OtelEnabled)

	t.Setenv("OTEL_SDK_DISABLED", "true")
	assert.False(t, LoadConfig(config.Config{}).OtelEnabled)
}

func TestDebugInDevelopment(t *testing.T) {
	cfg := Config{Environment: "development", LogLevel: "info"}
	assert.True(t, cfg.Debug())

	cfg = Config{Environment: "production", LogLevel: "DEBUG"}
	assert.True(t, cfg.Debug())
}
