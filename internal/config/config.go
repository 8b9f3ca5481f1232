package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	DatabaseDSN  string
	JWTSecret    string
	CORSOrigins  string
	RabbitMQURL  string // empty disables event publishing
	RedisAddr    string // empty disables the stats cache
	StatsCacheTTL string // seconds, parsed where used
}

func Load() *Config {
	// .env is a local-dev convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=scraptrack port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		StatsCacheTTL: getEnv("STATS_CACHE_TTL_SECONDS", "60"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set. It is mandatory for production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters long.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=scraptrack port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.RabbitMQURL == "" {
		log.Println("[WARN] RABBITMQ_URL is not set, approval/reservation events will not be published.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
