package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TherapistsTable != "therapists" {
		t.Errorf("expected default therapists table, got %s", cfg.TherapistsTable)
	}
	if cfg.TherapistDateIndexName != "TherapistDateIndex" {
		t.Errorf("expected default GSI name, got %s", cfg.TherapistDateIndexName)
	}
	if cfg.EmailProvider != "ses" {
		t.Errorf("expected ses as default email provider, got %s", cfg.EmailProvider)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("unexpected rate limit defaults: %v/%v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("THERAPISTS_TABLE", "therapists-prod")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.Port)
	}
	if cfg.TherapistsTable != "therapists-prod" {
		t.Errorf("expected table override, got %s", cfg.TherapistsTable)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider, got %q", cfg.EmailProvider)
	}
	if !cfg.UseMemoryStore {
		t.Error("expected memory store enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}
