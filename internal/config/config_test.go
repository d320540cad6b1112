package config

import (
	"errors"
	"testing"
	"time"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()

	for _, key := range []string{
		"DATABASE_URL",
		"PORT",
		"APP_ENV",
		"DATA_DIR",
		"OUTPUT_DIR",
		"TELEGRAM_API_TOKEN",
		"TELEGRAM_MODERATOR_CHAT_ID",
	} {
		t.Setenv(key, env[key])
	}
}

func TestLoad(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":               "postgres://localhost/vef2",
		"PORT":                       "8080",
		"APP_ENV":                    "production",
		"DATA_DIR":                   "./testdata",
		"TELEGRAM_API_TOKEN":         "123:abc",
		"TELEGRAM_MODERATOR_CHAT_ID": "-1001",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DB.URL != "postgres://localhost/vef2" {
		t.Errorf("DB.URL = %q", cfg.DB.URL)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.DataDir != "./testdata" {
		t.Errorf("DataDir = %q, want ./testdata", cfg.DataDir)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want default dist", cfg.OutputDir)
	}
	if !cfg.Telegram.Enabled() || cfg.Telegram.ModeratorChatID != -1001 {
		t.Errorf("Telegram = %+v, want enabled with chat -1001", cfg.Telegram)
	}
	if cfg.DB.MaxConnections != 10 || cfg.DB.MaxConnLifetime != 30*time.Minute {
		t.Errorf("DB pool settings = %d/%s, want defaults", cfg.DB.MaxConnections, cfg.DB.MaxConnLifetime)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/vef2"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Env != "local" || cfg.DataDir != "data" {
		t.Errorf("Env/DataDir = %q/%q, want local/data", cfg.Env, cfg.DataDir)
	}
	if cfg.Telegram.Enabled() {
		t.Errorf("Telegram enabled without a token")
	}
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	setEnv(t, nil)

	if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("Load() error = %v, want %v", err, ErrMissingEnvironmentVariables)
	}

	cfg, err := LoadStatic()
	if err != nil {
		t.Fatalf("LoadStatic() error = %v", err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", DefaultPort, false},
		{"0", DefaultPort, false},
		{"4000", 4000, false},
		{" 4000 ", 4000, false},
		{"abc", 0, true},
		{"-1", 0, true},
		{"70000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parsePort(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPort) {
					t.Errorf("parsePort(%q) error = %v, want %v", tt.raw, err, ErrInvalidPort)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parsePort(%q) = %d, %v, want %d", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestLoadInvalidPort(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/vef2", "PORT": "http"})

	if _, err := Load(); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("Load() error = %v, want %v", err, ErrInvalidPort)
	}
}
