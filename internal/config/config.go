package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	HTTPAddr   string
	DBUrl      string
	DBNs       string
	DBDb       string
	DBUser     string
	DBPass     string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		HTTPAddr:   getEnv("HTTP_ADDR", ":3000"),
		DBUrl:      os.Getenv("SURREAL_URL"),
		DBUser:     os.Getenv("SURREAL_USER"),
		DBPass:     os.Getenv("SURREAL_PASS"),
		DBNs:       os.Getenv("SURREAL_NS"),
		DBDb:       os.Getenv("SURREAL_DB"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getDurationEnv("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost: getIntEnv("BCRYPT_COST", 10),
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		return nil, fmt.Errorf("required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set")
	}
	// A missing JWT_SECRET is a startup failure, not a silently insecure default.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable JWT_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid value for %s, using default %s", key, fallback)
	}
	return fallback
}
