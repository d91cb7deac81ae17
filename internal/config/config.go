// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	DevMode        bool
	FrontendOrigin string  // CORS origin allowed to call the API
	RiskFreeRate   float64 // annual risk-free rate used by the engine
	FrontierPoints int     // efficient frontier resolution
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Missing values fall back to defaults.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           8000,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DevMode:        getEnv("DEV_MODE", "false") == "true",
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		RiskFreeRate:   0.04,
		FrontierPoints: 20,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RISK_FREE_RATE %q: %w", v, err)
		}
		cfg.RiskFreeRate = rate
	}

	if v := os.Getenv("FRONTIER_POINTS"); v != "" {
		points, err := strconv.Atoi(v)
		if err != nil || points <= 0 {
			return nil, fmt.Errorf("invalid FRONTIER_POINTS %q", v)
		}
		cfg.FrontierPoints = points
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
