package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Application settings
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Feed    FeedConfig
	Goals   GoalConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Feed settings for the spreadsheet CSV export
type FeedConfig struct {
	SheetCSVURL        string
	RefreshInterval    time.Duration
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

type GoalConfig struct {
	TeamMonthlyGoal float64
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Optional .env for local runs; deployments set the environment
	// directly.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Feed: FeedConfig{
			SheetCSVURL:        getEnv("SHEET_CSV_URL", ""),
			RefreshInterval:    getDurationEnv("REFRESH_INTERVAL", "60s"),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 10),
		},
		Goals: GoalConfig{
			TeamMonthlyGoal: getFloatEnv("TEAM_MONTHLY_GOAL", 50000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if config.Feed.SheetCSVURL == "" {
		return nil, fmt.Errorf("SHEET_CSV_URL is required")
	}
	if config.Feed.RefreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be positive")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
