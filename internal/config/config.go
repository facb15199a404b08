package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/iotlab-kiit/registration-service/internal/auth"
)

// BrevoConfig configures the transactional email / contact list provider.
// An empty APIKey disables the notifier entirely.
type BrevoConfig struct {
	APIKey        string
	BaseURL       string
	ContactListID int
	SenderName    string
	SenderEmail   string
	PaymentLink   string
}

// Config holds all runtime configuration, read once at startup.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	MongoURI      string
	MongoDatabase string
	RedisURL      string

	SessionSecret string
	SessionTTL    time.Duration
	AdminAccounts []auth.AdminAccount

	Brevo BrevoConfig
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "innovance"),
		RedisURL:      os.Getenv("REDIS_URL"),

		SessionSecret: getEnv("ADMIN_JWT_SECRET", ""),
		SessionTTL:    durationEnv("ADMIN_SESSION_TTL", 6*time.Hour),
		AdminAccounts: auth.ParseAdminList(os.Getenv("ADMIN_CREDENTIALS")),

		Brevo: BrevoConfig{
			APIKey:        os.Getenv("BREVO_API_KEY"),
			BaseURL:       getEnv("BREVO_BASE_URL", "https://api.brevo.com"),
			ContactListID: intEnv("BREVO_CONTACT_LIST_ID", 2),
			SenderName:    getEnv("BREVO_SENDER_NAME", "IOT LAB Box Office"),
			SenderEmail:   getEnv("BREVO_SENDER_EMAIL", "noreply@example.com"),
			PaymentLink:   os.Getenv("PAYMENT_LINK"),
		},
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if len(cfg.AdminAccounts) == 0 {
		return nil, fmt.Errorf("ADMIN_CREDENTIALS must list at least one account")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseLogLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
