package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	DatabaseURI           string
	JWTSecret             string
	TelegramToken         string
	TelegramDefaultChatID string
	AIAPIKey              string
	AIBaseURL             string
	AIModel               string
	ReminderTimezone      string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		Port:                  getEnvOrDefault("PORT", "3001"),
		DatabaseURI:           os.Getenv("DATABASE_URI"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		TelegramToken:         os.Getenv("TELEGRAM_TOKEN"),
		TelegramDefaultChatID: os.Getenv("TELEGRAM_DEFAULT_CHAT_ID"),
		AIAPIKey:              os.Getenv("AI_API_KEY"),
		AIBaseURL:             getEnvOrDefault("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		AIModel:               getEnvOrDefault("AI_MODEL", "llama-3.1-8b-instant"),
		ReminderTimezone:      getEnvOrDefault("REMINDER_TIMEZONE", "Asia/Kolkata"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
