package config

import "testing"

// Requirement: defaults apply when the environment is empty, literal
// values win when set.
func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("AUTH_MODE", "")
	t.Setenv("AUTH_FILE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_SECRET", "")

	cfg := FromEnv()
	if cfg.Port != "3000" {
		t.Errorf("default Port = %q, want 3000", cfg.Port)
	}
	if cfg.Mode != "demo" {
		t.Errorf("default Mode = %q, want demo", cfg.Mode)
	}
	if cfg.AuthFile != "./data/auth.json" {
		t.Errorf("default AuthFile = %q", cfg.AuthFile)
	}

	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://twin@db/homebase")
	t.Setenv("AUTH_SECRET", "0123456789abcdef0123456789abcdef")

	cfg = FromEnv()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://twin@db/homebase" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Secret != "0123456789abcdef0123456789abcdef" {
		t.Errorf("Secret = %q", cfg.Secret)
	}
}

// Requirement: production delivery needs both the mode flag and an SMTP
// host; either one alone keeps demo delivery.
func TestProduction(t *testing.T) {
	tests := []struct {
		name string
		mode string
		host string
		want bool
	}{
		{name: "production with host", mode: "production", host: "mail.twin.test", want: true},
		{name: "production without host", mode: "production", host: "", want: false},
		{name: "demo with host", mode: "demo", host: "mail.twin.test", want: false},
		{name: "demo without host", mode: "demo", host: "", want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			c := Config{Mode: test.mode, SMTPHost: test.host}
			if got := c.Production(); got != test.want {
				t.Errorf("Production() = %v, want %v", got, test.want)
			}
		})
	}
}
