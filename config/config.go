package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env            string
	Port           string
	DBURL          string
	TokenSecret    string
	TokenExpiryHrs int
	CounterBackend string
	RedisAddr      string
	MailProvider   string
	MailFrom       string
}

func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DBURL:          mustGetEnv("DB_URL"),
		TokenSecret:    mustGetEnv("TOKEN_SECRET"),
		TokenExpiryHrs: getEnvAsInt("TOKEN_EXPIRY_HOURS", 24),
		CounterBackend: getEnv("COUNTER_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		MailProvider:   getEnv("MAIL_PROVIDER", "console"),
		MailFrom:       getEnv("MAIL_FROM", "no-reply@koperasi.example"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
