package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env              string
	HTTPPort         string
	DatabaseURL      string
	DBMaxConns       int
	RedisAddr        string
	RedisTimeout     time.Duration
	JWTSecret        string
	TokenTTL         time.Duration
	RateLimitPerMin  int
	RateLimitBackend string
	SeedDefaults     bool
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file is loaded first when present.
func Load() App {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded environment from .env")
	}
	return App{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPPort:         getEnv("HTTP_PORT", "3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://hr:hr@localhost:5432/hr_system?sslmode=disable"),
		DBMaxConns:       intEnv("DB_MAX_CONNS", 10),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisTimeout:     durationEnv("REDIS_TIMEOUT", 2*time.Second),
		JWTSecret:        getEnv("JWT_SECRET", "dev-signing-secret-change"),
		TokenTTL:         durationEnv("TOKEN_TTL", 24*time.Hour),
		RateLimitPerMin:  intEnv("RATE_LIMIT_PER_MIN", 120),
		RateLimitBackend: getEnv("RATE_LIMIT_BACKEND", "memory"),
		SeedDefaults:     boolEnv("SEED_DEFAULTS", true),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			logrus.Warnf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		logrus.Warnf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		logrus.Warnf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
