package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Fatalf("token ttl = %v, want 72h", cfg.TokenTTL)
	}
	if cfg.DBPort != 5432 {
		t.Fatalf("db port = %d, want 5432", cfg.DBPort)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	// t.Setenv registers the restore; unset so the key is truly absent.
	t.Setenv("DB_PASSWORD", "x")
	os.Unsetenv("DB_PASSWORD")
	t.Setenv("JWT_SECRET", "jwt-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DB_PASSWORD")
	}
}

func TestDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "forum")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := "host=db.internal user=forum password=secret dbname=forum port=5432 sslmode=disable TimeZone=UTC"
	if cfg.DSN() != want {
		t.Fatalf("dsn = %q, want %q", cfg.DSN(), want)
	}
}

func TestValidateTwilio(t *testing.T) {
	setRequired(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_FROM", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when TWILIO_FROM is unset with a SID")
	}
}
