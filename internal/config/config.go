package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	// Store
	StoreDriver string

	// Database (postgres driver only)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity tokens
	SessionSecret string
	SessionTTL    time.Duration

	// Poster lookup (OMDb compatible)
	PosterAPIURL  string
	PosterAPIKey  string
	PosterTimeout time.Duration

	// Policy
	StrictDelete bool

	// Server
	Port            string
	CORSOrigins     string
	RateLimitPerMin int

	// Logging and error tracking
	LogLevel  string
	SentryDSN string
	AppEnv    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	return &Config{
		StoreDriver: getEnv("STORE_DRIVER", StoreMemory),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ratings_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),

		PosterAPIURL:  getEnv("POSTER_API_URL", "https://www.omdbapi.com/"),
		PosterAPIKey:  getEnv("POSTER_API_KEY", ""),
		PosterTimeout: parseDuration(getEnv("POSTER_TIMEOUT", "5s"), 5*time.Second),

		StrictDelete: parseBool(getEnv("STRICT_DELETE", "false")),

		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMin: parseInt(getEnv("RATE_LIMIT_PER_MIN", "120"), 120),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required for the postgres store")
		}
	default:
		return errors.New("STORE_DRIVER must be memory or postgres")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
