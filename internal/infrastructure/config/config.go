// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Reservation store
	StoreBackend  string // "mongo" or "postgres"
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string
	PostgresDSN   string

	// Dialogue policy
	DuplicatePolicy   string // "allow", "reject" or "overwrite"
	EnforceHoursCheck bool

	// Knowledge source
	FactSheetPath string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Front desk notifications
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	FrontdeskInbox    string

	// Housekeeping
	SweepSchedule string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		StoreBackend:  getEnv("STORE_BACKEND", "mongo"),
		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "restaurant"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),

		DuplicatePolicy:   getEnv("DUPLICATE_POLICY", "reject"),
		EnforceHoursCheck: getEnvAsBool("ENFORCE_HOURS_CHECK", true),

		FactSheetPath: getEnv("FACT_SHEET_PATH", "kb/restaurant.md"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		FrontdeskInbox:    getEnv("FRONTDESK_INBOX", ""),

		SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 4 * * *"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
