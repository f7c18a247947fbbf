package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Aging sweep over requisitions stuck in pending approval
	AgingSweepCron string
	AgingStaleDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "go-hiring"),
		SkipAuth:       getEnv("SKIP_AUTH", "false") == "true",
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "go-hiring"),
		AgingSweepCron: getEnv("AGING_SWEEP_CRON", "0 6 * * *"),
		AgingStaleDays: getEnvInt("AGING_STALE_DAYS", 7),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
