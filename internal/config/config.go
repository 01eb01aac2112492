package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddress  string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpiration  time.Duration
	StorageBackend string // "mongo" or "memory"
	DataDir        string
	RateLimitRPM   int
	RateLimitBurst int
}

func Load() *Config {
	return &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGODB_DB", "devlink"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:  time.Hour,
		StorageBackend: getEnv("STORAGE_BACKEND", "mongo"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 120),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
