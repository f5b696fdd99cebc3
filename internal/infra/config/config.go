// internal/infra/config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the environment configuration for the whole service.
type Config struct {
	Port      string
	GCPCreds  string
	ProjectID string

	GCSBucket         string
	FirebaseProjectID string

	// SendGrid. Key may come from the environment directly or from
	// Secret Manager via SendGridSecretName.
	SendGridAPIKey     string
	SendGridSecretName string
	MailFrom           string

	// Optional backends. Empty means the feature falls back (Redis:
	// no caching; Postgres: categories stay in the document store).
	RedisAddr     string
	RedisPassword string
	DatabaseURL   string

	AllowedOrigin string
	ShippingCost  float64
}

// Load reads .env (when present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, relying on environment")
	}

	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:      getenvDefault("PORT", "8080"),
		GCPCreds:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ProjectID: defaultProject,

		GCSBucket:         os.Getenv("GCS_BUCKET"),
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFrom:           getenvDefault("MAIL_FROM", "no-reply@storefront.example"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
		ShippingCost:  getenvFloat("SHIPPING_COST", 100),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] %s=%q is not a number, using default %v", key, v, def)
		return def
	}
	return f
}
