package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Required: issuer claim for access tokens

	SigningKeyFile string // Optional: path to the Ed25519 signing key (PKCS8 PEM); generated on first start
	DatabaseFile   string // Optional: path to SQLite database file (default: ./profiles.db)
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SeedAdminEmail    string // Optional: seed an admin account with this email on startup
	SeedAdminPassword string // Optional: password for the seeded admin (generated when empty)

	Env                   string        // Environment (dev, staging, prod) (default: dev)
	LogLevel              string        // Log level (debug, info, warn, error) (default: info)
	LogFormat             string        // Log format (json, text) (default: json)
	Port                  int           // HTTP server port (default: 8080)
	ShutdownGracePeriod   time.Duration // Graceful shutdown timeout (default: 10s)
	AccessTokenTTL        time.Duration // Access token lifetime (default: jwtx.DefaultAccessTokenTTL)
	HousekeepingInterval  time.Duration // Housekeeping interval (default: 1h)
	NotificationRetention time.Duration // How long read notifications are kept (default: 30 days)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:                getEnvOrDefault("PROFILES_ISSUER", "readspace-profiles"),
		SigningKeyFile:        os.Getenv("PROFILES_SIGNING_KEY_FILE"),
		DatabaseFile:          getEnvOrDefault("PROFILES_DATABASE_FILE", "profiles.db"),
		PepperFile:            getEnvOrDefault("PROFILES_PEPPER_FILE", "pepper"),
		SeedAdminEmail:        os.Getenv("PROFILES_SEED_ADMIN_EMAIL"),
		SeedAdminPassword:     os.Getenv("PROFILES_SEED_ADMIN_PASSWORD"),
		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		AccessTokenTTL:        getEnvDurationOrDefault("PROFILES_ACCESS_TOKEN_TTL", 0),
		HousekeepingInterval:  getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		NotificationRetention: getEnvDurationOrDefault("NOTIFICATION_RETENTION", 30*24*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
