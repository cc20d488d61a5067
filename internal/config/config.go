package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr string
	// PublicURL is the base of the participation links encoded in QR codes.
	PublicURL   string
	CORSOrigins []string

	StorageDriver string
	DB            DBConfig
	Redis         RedisConfig

	AdminUsername string
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration
	CookieSecure  bool

	// StatsCron is a six-field cron expression (with seconds) for the stats broadcast.
	StatsCron  string
	LogVerbose bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig is empty when sessions are kept in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func FromEnv() (Config, error) {
	var c Config
	c.HTTPAddr = envOr("HTTP_ADDR", ":8080")
	c.PublicURL = strings.TrimRight(envOr("APP_URL", "http://localhost:8080"), "/")
	c.CORSOrigins = splitList(envOr("CORS_ORIGINS", "*"))

	c.StorageDriver = strings.ToLower(envOr("STORAGE_DRIVER", DriverPostgres))
	switch c.StorageDriver {
	case DriverPostgres, DriverMemory:
	default:
		return c, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StorageDriver)
	}

	c.DB = DBConfig{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     strings.TrimSpace(os.Getenv("DB_USER")),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     envOr("DB_NAME", "tombola"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}

	c.Redis.Addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c, fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}

	c.AdminUsername = envOr("AUTH_USERNAME", "admin")
	c.AdminPassword = os.Getenv("AUTH_PASSWORD")
	c.JWTSecret = os.Getenv("JWT_SECRET")

	ttl, err := time.ParseDuration(envOr("SESSION_TTL", "24h"))
	if err != nil {
		return c, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return c, fmt.Errorf("SESSION_TTL must be positive")
	}
	c.SessionTTL = ttl

	c.CookieSecure = parseBool(os.Getenv("COOKIE_SECURE"))
	c.StatsCron = envOr("STATS_CRON", "0 * * * * *")
	c.LogVerbose = parseBool(os.Getenv("LOG_VERBOSE"))

	return c, nil
}

// RequireAdmin checks the settings the HTTP server needs to authenticate
// administrators.
func (c Config) RequireAdmin() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("AUTH_PASSWORD is empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is empty")
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
