package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath     string
	PriceCeiling float64
	StrictParse  bool

	HTTPAddr   string
	SampleSize int
	LogLevel   string

	SnapshotDir    string
	ChromeBin      string
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
}

// Load reads the .env file (if any) and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DataPath:     getEnv("DATA_PATH", "./data/apps.csv"),
		PriceCeiling: getEnvFloat("PRICE_CEILING", 250),
		StrictParse:  getEnvBool("STRICT_PARSE", false),

		HTTPAddr:   getEnv("HTTP_ADDR", ":5000"),
		SampleSize: getEnvInt("SAMPLE_SIZE", 10),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		SnapshotDir:    getEnv("SNAPSHOT_DIR", "./output/snapshots"),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 2),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 250),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
