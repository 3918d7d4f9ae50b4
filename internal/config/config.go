package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	SessionSecret string
	AdminEmail    string // the one identity with booking-management capability
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
}

func Load() *Config {
	// Local runs keep their settings in a .env file; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=rgcs port=5432 sslmode=disable"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "465"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.SessionSecret == "" {
		log.Fatal("[FATAL] SESSION_SECRET is not set")
	}
	if len(cfg.SessionSecret) < 32 {
		log.Fatal("[FATAL] SESSION_SECRET must be at least 32 characters")
	}
	if cfg.AdminEmail == "" {
		log.Fatal("[FATAL] ADMIN_EMAIL is not set; the admin screen would be unreachable")
	}
	if cfg.SMTPHost == "" {
		log.Println("[WARN] SMTP_HOST is not set, email notification is disabled")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
