package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	AppPort string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RecentPageSize int
	DetailPageSize int

	NATSURL      string
	OTLPEndpoint string

	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
	ImageURLTTL    time.Duration
}

// Load reads .env.dev when present and builds the Config from the environment.
func Load() *Config {
	if err := godotenv.Load(".env.dev"); err != nil {
		log.Println("No .env.dev file found, reading from environment variables")
	}

	cfg := &Config{
		AppPort: getEnv("APP_PORT", "8080"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "review"),

		JWTSecret:       getEnv("JWT_SECRET", "defaultSecret"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_DAYS", 1)) * 24 * time.Hour,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 14)) * 24 * time.Hour,

		RecentPageSize: getEnvInt("RECENT_PAGE_SIZE", 10),
		DetailPageSize: getEnvInt("DETAIL_PAGE_SIZE", 5),

		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),

		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Region:       getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET_NAME", ""),
		S3AccessKey:    getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3UsePathStyle: getEnv("S3_USE_PATH_STYLE", "false") == "true",
		ImageURLTTL:    time.Duration(getEnvInt("IMAGE_URL_TTL_MINUTES", 15)) * time.Minute,
	}

	if cfg.JWTSecret == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}

	return cfg
}

// DatabaseURL is the pgx connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		log.Printf("Invalid value for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return intValue
}
