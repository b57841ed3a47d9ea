package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SESSION_TIMEOUT")
	os.Unsetenv("SESSION_REMEMBER_TIMEOUT")
	os.Unsetenv("LISTEN")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Session.Timeout != 24*time.Hour {
		t.Errorf("Expected default session timeout 24h, got %v", cfg.Session.Timeout)
	}
	if cfg.Session.RememberTimeout != 30*24*time.Hour {
		t.Errorf("Expected default remember timeout 720h, got %v", cfg.Session.RememberTimeout)
	}
	if cfg.Listen != ":3000" {
		t.Errorf("Expected default listen :3000, got %v", cfg.Listen)
	}
	if cfg.DatabasePath != "zynetra.db" {
		t.Errorf("Expected default database path zynetra.db, got %v", cfg.DatabasePath)
	}
	if cfg.Logs.Retention != 48*time.Hour {
		t.Errorf("Expected default log retention 48h, got %v", cfg.Logs.Retention)
	}
}

func TestLoad_SessionTimeoutFromEnv(t *testing.T) {
	os.Setenv("SESSION_TIMEOUT", "1h")
	defer os.Unsetenv("SESSION_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Session.Timeout != 1*time.Hour {
		t.Errorf("Expected session timeout 1h, got %v", cfg.Session.Timeout)
	}
}

func TestLoad_PortOverridesListen(t *testing.T) {
	os.Setenv("PORT", "8081")
	defer os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Listen != ":8081" {
		t.Errorf("Expected listen :8081, got %v", cfg.Listen)
	}
}

func TestLoad_OwnerSeedFromEnv(t *testing.T) {
	os.Setenv("OWNER_EMAIL", "boss@example.com")
	os.Setenv("OWNER_PASSWORD", "seed-password")
	defer os.Unsetenv("OWNER_EMAIL")
	defer os.Unsetenv("OWNER_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Owner.Email != "boss@example.com" {
		t.Errorf("Expected owner email from env, got %v", cfg.Owner.Email)
	}
	if cfg.Owner.Password != "seed-password" {
		t.Errorf("Expected owner password from env, got %v", cfg.Owner.Password)
	}
}

func TestLoad_OwnerPasswordHasNoDefault(t *testing.T) {
	os.Unsetenv("OWNER_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Owner.Password != "" {
		t.Error("Owner seed password must not have a built-in default")
	}
}

func TestLoad_SessionSecretFromEnv(t *testing.T) {
	os.Setenv("SESSION_SECRET", "test-secret-key-32-chars-long!!!")
	defer os.Unsetenv("SESSION_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Session.Secret != "test-secret-key-32-chars-long!!!" {
		t.Error("Session secret should be loaded from env")
	}
}
