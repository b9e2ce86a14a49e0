package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTGRES_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBName != "khoborpress" {
		t.Errorf("DBName: got %q, want %q", cfg.DBName, "khoborpress")
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev() = true for development env")
	}
}

func TestLoadProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for default password in production")
	}
}

func TestDSNAndAddr(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "9000",
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n",
	}

	wantDSN := "postgres://u:p@db:5433/n?sslmode=disable"
	if got := cfg.DSN(); got != wantDSN {
		t.Errorf("DSN: got %q, want %q", got, wantDSN)
	}
	if got := cfg.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr: got %q, want %q", got, "127.0.0.1:9000")
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("KHOBOR_TEST_KEY", "set")
	if got := envOrDefault("KHOBOR_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("got %q, want %q", got, "set")
	}
	if got := envOrDefault("KHOBOR_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("got %q, want %q", got, "fallback")
	}
}
