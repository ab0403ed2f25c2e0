package observability

import (
	"os"
	"strconv"
	"strings"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
)

// Config holds observability configuration. Standard OTEL_* variables win
// over the application settings they overlap with.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	out := Config{
		ServiceName: firstNonEmpty(os.Getenv("OTEL_SERVICE_NAME"), cfg.AppName, "chefetoile"),
		Environment: firstNonEmpty(os.Getenv("DEPLOYMENT_ENV"), cfg.Environment),
		Version:     firstNonEmpty(os.Getenv("SERVICE_VERSION"), cfg.AppVersion),
		LogLevel:    strings.ToLower(firstNonEmpty(os.Getenv("LOG_LEVEL"), "info")),
	}

	// Console logs are easier to read locally; everything else ships JSON.
	defaultFormat := "json"
	if isDevEnv(out.Environment) {
		defaultFormat = "console"
	}
	out.LogFormat = strings.ToLower(firstNonEmpty(os.Getenv("LOG_FORMAT"), defaultFormat))

	out.OtelEnabled = getenvBool("OTEL_ENABLED", false) && !getenvBool("OTEL_SDK_DISABLED", false)
	out.OtelExporterEndpoint = firstNonEmpty(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), cfg.OTLPEndpoint)
	out.OtelExporterProtocol = strings.ToLower(firstNonEmpty(
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL"),
		os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"),
		"grpc",
	))
	out.OtelSamplingRatio = getenvFloat("OTEL_TRACES_SAMPLER_ARG", getenvFloat("OTEL_SAMPLING_RATIO", 0.1))

	return out
}

func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	return isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
