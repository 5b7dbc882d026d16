package config

import "os"

// Config holds all process-wide settings. Loaded once at startup and treated
// as read-only afterwards; constructors receive it explicitly instead of
// reading the environment themselves.
type Config struct {
	Port string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	UseMemoryStore bool

	GoogleMapsAPIKey string

	AWSRegion string
	EmailFrom string

	// Recipient for the daily visit-reminder digest (single-tenant deployment).
	ReminderEmail string
	ReminderPhone string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads the configuration from the environment. Call godotenv before
// this so a local .env file is picked up.
func Load() *Config {
	return &Config{
		Port: get("PORT", "8080"),

		DBHost: get("DB_HOST", "localhost"),
		DBPort: get("DB_PORT", "5432"),
		DBUser: get("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: get("DB_NAME", "mht"),

		UseMemoryStore: os.Getenv("USE_MEMORY_STORE") == "true",

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		AWSRegion: get("AWS_REGION", "us-east-1"),
		EmailFrom: get("EMAIL_FROM", "mht@info.com"),

		ReminderEmail: os.Getenv("REMINDER_EMAIL"),
		ReminderPhone: os.Getenv("REMINDER_PHONE"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
