package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer          string        // issuer claim for access tokens (default: hwlend)
	DBDriver        string        // sqlite or postgres (default: sqlite)
	DatabaseFile    string        // SQLite database path (default: ./hwlend.db)
	DatabaseURL     string        // Postgres connection URL, required for the postgres driver
	PepperFile      string        // file holding the password pepper (default: ./pepper)
	SigningKeyFile  string        // PEM Ed25519 key; empty generates an ephemeral key
	TokenTTL        time.Duration // access token lifetime (default: 1h)
	ResetTokenTTL   time.Duration // password reset token lifetime (default: 1h)
	MaxTxAttempts   int           // optimistic transaction retries (default: 5)
	ArchiveBucket   string        // S3 bucket for usage archives; empty disables archiving
	ArchivePrefix   string        // object key prefix (default: usage)
	ArchiveEndpoint string        // custom S3 endpoint, e.g. MinIO
	ArchiveRegion   string        // S3 region (default: us-east-1)
	ArchiveAccess   string        // static access key; empty uses the default credential chain
	ArchiveSecret   string        // static secret key

	Env                  string        // dev, staging, prod (default: dev)
	LogLevel             string        // debug, info, warn, error (default: info)
	LogFormat            string        // json, text (default: json)
	Port                 int           // HTTP port (default: 8080)
	ShutdownGracePeriod  time.Duration // graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:          getEnvOrDefault("HWLEND_ISSUER", "hwlend"),
		DBDriver:        getEnvOrDefault("HWLEND_DB_DRIVER", "sqlite"),
		DatabaseFile:    getEnvOrDefault("HWLEND_DATABASE_FILE", "hwlend.db"),
		DatabaseURL:     os.Getenv("HWLEND_DATABASE_URL"),
		PepperFile:      getEnvOrDefault("HWLEND_PEPPER_FILE", "pepper"),
		SigningKeyFile:  os.Getenv("HWLEND_SIGNING_KEY_FILE"),
		TokenTTL:        getEnvDurationOrDefault("HWLEND_TOKEN_TTL", time.Hour),
		ResetTokenTTL:   getEnvDurationOrDefault("HWLEND_RESET_TOKEN_TTL", time.Hour),
		MaxTxAttempts:   getEnvIntOrDefault("HWLEND_MAX_TX_ATTEMPTS", 5),
		ArchiveBucket:   os.Getenv("HWLEND_ARCHIVE_BUCKET"),
		ArchivePrefix:   getEnvOrDefault("HWLEND_ARCHIVE_PREFIX", "usage"),
		ArchiveEndpoint: os.Getenv("HWLEND_ARCHIVE_ENDPOINT"),
		ArchiveRegion:   getEnvOrDefault("HWLEND_ARCHIVE_REGION", "us-east-1"),
		ArchiveAccess:   os.Getenv("HWLEND_ARCHIVE_ACCESS_KEY"),
		ArchiveSecret:   os.Getenv("HWLEND_ARCHIVE_SECRET_KEY"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
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

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
