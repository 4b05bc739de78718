package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDriver string
	DatabaseURL    string

	RedisURL string

	JWTSecret string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	KafkaBrokers    []string
	KafkaOrderTopic string
	KafkaGroupID    string

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	AdminEmails  []string
	AdminURL     string

	SweepInterval    time.Duration
	SweepBatchSize   int
	SweepAPIKeyHash  string
	ReadRetention    time.Duration
	SettingsCacheTTL time.Duration

	LocalesPath string
	Locale      string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "notification-archive"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		KafkaBrokers:    getListEnv("KAFKA_BROKERS", nil),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "orders.status-changed"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "storefront-admin"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AdminEmails:  getListEnv("ADMIN_EMAILS", nil),
		AdminURL:     getEnv("ADMIN_URL", "http://localhost:3000/admin"),

		SweepInterval:    getDurationEnv("SWEEP_INTERVAL", time.Hour),
		SweepBatchSize:   getIntEnv("SWEEP_BATCH_SIZE", 100),
		SweepAPIKeyHash:  getEnv("SWEEP_API_KEY_HASH", ""),
		ReadRetention:    getDurationEnv("READ_RETENTION", 30*24*time.Hour),
		SettingsCacheTTL: getDurationEnv("SETTINGS_CACHE_TTL", 5*time.Minute),

		LocalesPath: getEnv("LOCALES_PATH", "locales"),
		Locale:      getEnv("LOCALE", "en"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
