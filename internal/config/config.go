package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       []string
	HTTPAddr          string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	Store StoreConfig

	CatalogPath string
	PageSize    int
	SessionTTL  time.Duration

	LogLevel  string
	LogFormat string
}

// StoreConfig selects the key-value backend for owned resources and users.
type StoreConfig struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBDSN         string
	SQLitePath    string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	var err error

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// Allowed CORS origins in production, comma separated
	cfg.ProdOrigins = splitCSV(getEnv("PROD_ORIGINS", ""))

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}

	if cfg.Store, err = loadStore(); err != nil {
		return nil, err
	}

	// Empty path means the built-in dataset
	cfg.CatalogPath = getEnv("CATALOG_PATH", "")

	if cfg.PageSize, err = getEnvAsInt("PAGE_SIZE", 12); err != nil {
		return nil, err
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

// loadStore reads the backend settings. Only the selected backend's
// connection settings are required.
func loadStore() (StoreConfig, error) {
	sc := StoreConfig{
		Backend:       strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		Dir:           getEnv("STORE_DIR", "./data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		DBDSN:         os.Getenv("DB_DSN"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/resources.db"),
	}

	var err error
	if sc.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return sc, err
	}

	switch sc.Backend {
	case "memory", "local", "redis", "sqlite":
	case "postgres":
		if sc.DBDSN == "" {
			return sc, fmt.Errorf("DB_DSN is required for the postgres store")
		}
	default:
		return sc, fmt.Errorf("invalid STORE_BACKEND %q", sc.Backend)
	}
	return sc, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvAsDuration parses values such as "15m" or "1h".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
