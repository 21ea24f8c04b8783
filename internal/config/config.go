package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Push     PushConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type PushConfig struct {
	// TicketSecret signs short-lived websocket authentication tickets.
	TicketSecret string
	TicketTTL    time.Duration
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Push: PushConfig{
			TicketSecret: getEnv("PUSH_TICKET_SECRET", "dev_push_ticket_secret"),
			TicketTTL:    getEnvAsDuration("PUSH_TICKET_TTL_SECONDS", 60) * time.Second,
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "notesync_session"),
			TTL:        getEnvAsDuration("SESSION_TTL_HOURS", 30*24) * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(value)
	}
	return time.Duration(fallback)
}
