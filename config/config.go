// config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig holds the full environment-derived configuration. It is built
// once at startup and handed to controllers and services at construction,
// so nothing reads the environment at request time.
type AppConfig struct {
	Port       string
	JWTSecret  string
	CORSOrigins []string

	MongoURI string
	DBName   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SMTP settings for OTP and staff notification mail.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPUseTLS   bool
	FromEmail    string
	NotifyEmails []string

	// Google Calendar integration. Empty CalendarID or CredentialsFile
	// leaves the bridge unconfigured.
	CalendarID      string
	CredentialsFile string
	Timezone        string

	// Appointment slot grid.
	SlotStartHour       int
	SlotEndHour         int
	SlotDurationMinutes int

	SeedData bool
}

// LoadConfig reads the configuration from environment variables, applying
// the same defaults the clinic runs with in development.
func LoadConfig() *AppConfig {
	cfg := &AppConfig{
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		CORSOrigins:         splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MongoURI:            os.Getenv("MONGO_URI"),
		DBName:              getEnv("DB_NAME", "drjidental"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		SMTPHost:            getEnv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:            getEnvInt("EMAIL_PORT", 587),
		SMTPUser:            os.Getenv("EMAIL_HOST_USER"),
		SMTPPass:            os.Getenv("EMAIL_HOST_PASSWORD"),
		SMTPUseTLS:          getEnvBool("EMAIL_USE_TLS", true),
		FromEmail:           getEnv("DEFAULT_FROM_EMAIL", "noreply@drjidental.com"),
		NotifyEmails:        splitList(getEnv("APPOINTMENT_NOTIFY_EMAILS", "info@drjidental.com")),
		CalendarID:          os.Getenv("GOOGLE_CALENDAR_ID"),
		CredentialsFile:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		Timezone:            getEnv("TIME_ZONE", "Local"),
		SlotStartHour:       getEnvInt("APPOINTMENT_SLOT_START_HOUR", 9),
		SlotEndHour:         getEnvInt("APPOINTMENT_SLOT_END_HOUR", 17),
		SlotDurationMinutes: getEnvInt("APPOINTMENT_SLOT_DURATION_MINUTES", 30),
		SeedData:            getEnvBool("SEED_DATA", false),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
