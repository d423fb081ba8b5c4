package config

import (
	"os"
	"strconv"
	"time"
)

// Store configuration
func GetMongoURI() string {
	return getEnvWithDefault("MONGO_URI", "")
}

func GetMongoDBName() string {
	return getEnvWithDefault("MONGO_DB_NAME", "constituency_db")
}

func GetMongoCollection() string {
	return getEnvWithDefault("MONGO_COLLECTION", "constituency_data")
}

// Server configuration
func GetPort() string {
	return getEnvWithDefault("PORT", "8080")
}

func GetLogLevel() string {
	return getEnvWithDefault("LOG_LEVEL", "info")
}

func GetLogFormat() string {
	return getEnvWithDefault("LOG_FORMAT", "json")
}

func GetSessionTTL() time.Duration {
	minutes := getEnvAsInt("SESSION_TTL_MINUTES", 120)
	return time.Duration(minutes) * time.Minute
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
