package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.ArtifactDir != "storage/paystubs" {
		t.Fatalf("unexpected artifact dir %q", cfg.ArtifactDir)
	}
	if cfg.ChromeTimeout != 30*time.Second {
		t.Fatalf("unexpected chrome timeout %v", cfg.ChromeTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("COMPANY_ADDRESS", "100 Main St,Tampa FL 33601")
	t.Setenv("EMAIL_ENABLED", "true")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Addr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if len(cfg.CompanyAddress) != 2 {
		t.Fatalf("unexpected company address %v", cfg.CompanyAddress)
	}
	if !cfg.EmailEnabled {
		t.Fatal("expected email enabled")
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error without DATABASE_URL")
	}
}

func TestValidateEmailNeedsSMTPHost(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/nwfpay"
	cfg.EmailEnabled = true
	cfg.SMTPHost = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for email without SMTP host")
	}
}
