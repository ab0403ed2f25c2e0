package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is only accepted outside production.
const DevJWTSecret = "chefetoile_jwt_secret_dev_2024"

var ErrInsecureJWTSecret = errors.New("insecure_jwt_secret")

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	// NodeID seeds the snowflake generator; replicas need distinct values.
	NodeID int64

	AuthJWTSecret         string
	AuthJWTExpire         time.Duration
	AuthCookieName        string
	AuthCookieSecure      bool
	AuthCookieDisabled    bool
	AuthResetTokenTTL     time.Duration
	AuthLoginRatePerMin   int
	CORSAllowedOrigins    []string
	PasswordResetURL      string
	SuperAdminEmail       string
	SuperAdminPassword    string
	SuperAdminDisplayName string
	SuperAdminPhone       string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBMigrate         bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ChefSlugCacheTTL bounds how long a replica serves a cached public chef
	// profile; suspensions made on another replica show up after at most
	// this long. Zero keeps the service default.
	ChefSlugCacheTTL      time.Duration
	ChefSlugCacheDisabled bool

	Email EmailConfig

	Scheduler SchedulerConfig

	PlatformMetrics PlatformMetricsConfig
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

type SchedulerConfig struct {
	Enabled   bool
	Interval  time.Duration
	BatchSize int
	// Jobs restricts the jobs this replica runs; empty means all.
	Jobs []string
}

type PlatformMetricsConfig struct {
	Enabled   bool
	Exporter  string
	Endpoint  string
	AuthToken string
	Instance  string
	Interval  time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", getenv("NODE_ENV", "development"))
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:               getenv("APP_SERVICE", "chefetoile"),
		AppVersion:            getenv("APP_VERSION", "0.1.0"),
		Environment:           environment,
		HTTPAddr:              getenv("HTTP_ADDR", ":"+getenv("PORT", "5000")),
		NodeID:                int64(getenvInt("SNOWFLAKE_NODE", 1)),
		AuthJWTSecret:         strings.TrimSpace(getenv("JWT_SECRET", DevJWTSecret)),
		AuthJWTExpire:         getenvDuration("JWT_EXPIRE", 30*24*time.Hour),
		AuthCookieName:        getenv("SESSION_COOKIE_NAME", "chefetoile_session"),
		AuthCookieSecure:      authCookieSecure,
		AuthCookieDisabled:    getenvBool("SESSION_COOKIE_DISABLED", false),
		AuthResetTokenTTL:     getenvDuration("RESET_TOKEN_TTL", time.Hour),
		AuthLoginRatePerMin:   getenvInt("LOGIN_RATE_PER_MIN", 10),
		CORSAllowedOrigins:    splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		PasswordResetURL:      getenv("PASSWORD_RESET_URL", "http://localhost:5173/reset-password"),
		SuperAdminEmail:       strings.ToLower(strings.TrimSpace(getenv("SUPER_ADMIN_EMAIL", ""))),
		SuperAdminPassword:    getenv("SUPER_ADMIN_PASSWORD", ""),
		SuperAdminDisplayName: getenv("SUPER_ADMIN_NAME", "Super Admin"),
		SuperAdminPhone:       getenv("SUPER_ADMIN_PHONE", "+22800000000"),
		OTLPEndpoint:          getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:                getenv("DATABASE_TYPE", "postgres"),
		DBHost:                getenv("DATABASE_HOST", "localhost"),
		DBPort:                getenv("DATABASE_PORT", "5432"),
		DBName:                getenv("DATABASE_NAME", "chefetoile"),
		DBUser:                getenv("DATABASE_USER", "postgres"),
		DBPassword:            getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:             getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:         getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:         getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime:     getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime:     getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		DBMigrate:             getenvBool("DATABASE_MIGRATE", true),
		RedisAddr:             strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:         getenv("REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("REDIS_DB", 0),
		ChefSlugCacheTTL:      getenvDuration("CHEF_SLUG_CACHE_TTL", time.Minute),
		ChefSlugCacheDisabled: getenvBool("CHEF_SLUG_CACHE_DISABLED", false),
		Email: EmailConfig{
			SMTPHost:     strings.TrimSpace(getenv("SMTP_HOST", "")),
			SMTPPort:     getenvInt("SMTP_PORT", 587),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			SMTPFrom:     getenv("SMTP_FROM", "ChefEtoile <no-reply@chefetoile.com>"),
		},
		Scheduler: SchedulerConfig{
			Enabled:   getenvBool("SCHEDULER_ENABLED", true),
			Interval:  getenvDuration("SCHEDULER_INTERVAL", time.Minute),
			BatchSize: getenvInt("SCHEDULER_BATCH_SIZE", 50),
			Jobs:      splitList(getenv("SCHEDULER_JOBS", "")),
		},
		PlatformMetrics: PlatformMetricsConfig{
			Enabled:   getenvBool("PLATFORM_METRICS_ENABLED", false),
			Exporter:  strings.ToLower(getenv("PLATFORM_METRICS_EXPORTER", "")),
			Endpoint:  strings.TrimSpace(getenv("PLATFORM_METRICS_ENDPOINT", "")),
			AuthToken: strings.TrimSpace(getenv("PLATFORM_METRICS_AUTH_TOKEN", "")),
			Instance:  strings.TrimSpace(getenv("PLATFORM_METRICS_INSTANCE", "")),
			Interval:  getenvDuration("PLATFORM_METRICS_INTERVAL", 5*time.Minute),
		},
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// Validate rejects settings that must never reach production.
func (c Config) Validate() error {
	if c.IsProduction() && (c.AuthJWTSecret == "" || c.AuthJWTSecret == DevJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// getenvDuration accepts Go durations ("720h") and the day suffix used by
// the previous deployment ("30d").
func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil || days <= 0 {
			return def
		}
		return time.Duration(days) * 24 * time.Hour
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
