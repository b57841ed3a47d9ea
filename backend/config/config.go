package config

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen       string        `yaml:"listen"`
	DatabasePath string        `yaml:"database_path"`
	Session      SessionConfig `yaml:"session"`
	Owner        OwnerConfig   `yaml:"owner"`
	SMTP         SMTPConfig    `yaml:"smtp"`
	Logs         LogsConfig    `yaml:"logs"`
	TLS          TLSConfig     `yaml:"tls"`
}

type SessionConfig struct {
	Secret          string        `yaml:"secret"`
	Timeout         time.Duration `yaml:"timeout"`
	RememberTimeout time.Duration `yaml:"remember_timeout"`
}

// OwnerConfig seeds the single pre-verified account. Seeding is skipped
// entirely when Password is empty.
type OwnerConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Company  string `yaml:"company"`
	Role     string `yaml:"role"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LogsConfig struct {
	Retention time.Duration `yaml:"retention"`
}

type TLSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cert    string `yaml:"cert"`
	Key     string `yaml:"key"`
}

// Load builds the configuration from defaults, then config.yaml if present,
// then environment overrides. A .env file is picked up automatically.
func Load() (*Config, error) {
	cfg := &Config{
		Listen:       ":3000",
		DatabasePath: "zynetra.db",
		Session: SessionConfig{
			Timeout:         24 * time.Hour,
			RememberTimeout: 30 * 24 * time.Hour,
		},
		Owner: OwnerConfig{
			Email:   "equipozynetra@gmail.com",
			Name:    "Zynetra Team",
			Company: "Zynetra HQ",
			Role:    "CEO & Founder",
		},
		SMTP: SMTPConfig{
			Port: "587",
			From: "Zynetra Security <security@zynetra.com>",
		},
		Logs: LogsConfig{
			Retention: 48 * time.Hour,
		},
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config.yaml: %w", err)
		}
	}

	// Environment overrides
	if v := os.Getenv("LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Listen = ":" + v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.Timeout = d
		}
	}
	if v := os.Getenv("SESSION_REMEMBER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.RememberTimeout = d
		}
	}
	if v := os.Getenv("OWNER_EMAIL"); v != "" {
		cfg.Owner.Email = v
	}
	if v := os.Getenv("OWNER_PASSWORD"); v != "" {
		cfg.Owner.Password = v
	}
	if v := os.Getenv("OWNER_NAME"); v != "" {
		cfg.Owner.Name = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		cfg.SMTP.Port = v
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("LOGS_RETENTION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Logs.Retention = d
		}
	}
	if v := os.Getenv("TLS_ENABLED"); v == "true" {
		cfg.TLS.Enabled = true
	}
	if v := os.Getenv("TLS_CERT"); v != "" {
		cfg.TLS.Cert = v
	}
	if v := os.Getenv("TLS_KEY"); v != "" {
		cfg.TLS.Key = v
	}

	return cfg, nil
}
