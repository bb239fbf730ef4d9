package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds configuration for database access, shared by the API server
// and the scripts/ tooling.
type Config struct {
	// PostgreSQL
	PostgresURI string

	// Connection pool
	MaxOpenConns int
	MaxIdleConns int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

func loadConfig() *Config {
	return &Config{
		PostgresURI:  getEnv("POSTGRES_URI", ""),
		MaxOpenConns: getEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvInt("POSTGRES_MAX_IDLE_CONNS", 25),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return i
	}
	return defaultValue
}
