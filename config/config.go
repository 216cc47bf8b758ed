package config

import "os"

// Config holds the runtime configuration. Each field corresponds to an
// environment variable; see FromEnv for names and defaults.
type Config struct {
	Port    string
	BaseURL string

	// DatabaseURL selects the relational backend when set; otherwise the
	// file-backed adapter at AuthFile is used.
	DatabaseURL string
	AuthFile    string

	Secret      string
	AdminEmails string

	// Mode selects link delivery: "production" sends SMTP mail, anything
	// else logs the link instead.
	Mode         string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
}

func FromEnv() Config {
	return Config{
		Port:    getEnv("PORT", "3000"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		AuthFile:    getEnv("AUTH_FILE", "./data/auth.json"),

		Secret:      os.Getenv("AUTH_SECRET"),
		AdminEmails: os.Getenv("ADMIN_EMAILS"),

		Mode:         getEnv("AUTH_MODE", "demo"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "homebase@localhost"),
	}
}

// Production reports whether real mail delivery is both requested and
// configured. Without an SMTP host the process stays in demo delivery
// rather than failing every sign-in.
func (c Config) Production() bool {
	return c.Mode == "production" && c.SMTPHost != ""
}

func getEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
