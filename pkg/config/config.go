package config

import (
	"os"
	"strings"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresUrl             string
	MetricsPort             string
	JWTSecret               string

	// AdminEmails is the static moderation allow-list, lower-cased at load.
	// Admin identity is membership here, not a role column.
	AdminEmails []string

	// Object storage (S3-compatible) used for ID-image presigned uploads.
	StorageBucket    string
	StorageRegion    string
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBaseURL   string

	// SMTP settings for campaign sending.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresUrl:             getEnv("POSTGRES_CONN_STR", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		AdminEmails:             parseAdminEmails(getEnv("ADMIN_EMAILS", "")),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),
		StorageRegion:           getEnv("STORAGE_REGION", "auto"),
		StorageEndpoint:         getEnv("STORAGE_ENDPOINT", ""),
		StorageAccessKey:        getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:        getEnv("STORAGE_SECRET_KEY", ""),
		StorageBaseURL:          getEnv("STORAGE_BASE_URL", ""),
		SMTPHost:                getEnv("SMTP_HOST", ""),
		SMTPPort:                getEnv("SMTP_PORT", "587"),
		SMTPUser:                getEnv("SMTP_USER", ""),
		SMTPPass:                getEnv("SMTP_PASS", ""),
		SMTPFrom:                getEnv("SMTP_FROM", "no-reply@sauti.app"),
	}
}

// IsAdminEmail reports whether email is on the allow-list, case-insensitive.
// An empty allow-list means nobody is an admin.
func (c *Config) IsAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == needle {
			return true
		}
	}
	return false
}

func parseAdminEmails(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
