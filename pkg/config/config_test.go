package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every variable applyEnv reads so host settings do not leak
// into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LIFESCORE_PORT", "LIFESCORE_CORS_ORIGINS", "LIFESCORE_DB_DRIVER", "DATABASE_URL",
		"LIFESCORE_STORAGE_BACKEND", "LOCAL_STORAGE_PATH", "LIFESCORE_STORAGE_BUCKET",
		"LIFESCORE_STORAGE_PREFIX", "AWS_REGION", "LIFESCORE_S3_ENDPOINT", "LIFESCORE_WEBHOOK_URL",
		"LIFESCORE_WEBHOOK_SECRET", "LIFESCORE_JWT_SECRET", "LIFESCORE_LOG_LEVEL", "LIFESCORE_LOG_DEV",
		"LIFESCORE_SEED",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default storage backend local, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.LocalPath != ReportDir() {
		t.Errorf("expected default local path %q, got %q", ReportDir(), cfg.Storage.LocalPath)
	}
	if cfg.Webhook.Timeout != 10 {
		t.Errorf("expected default webhook timeout 10, got %d", cfg.Webhook.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		noFile  bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "non-existent file returns defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "8080" {
					t.Errorf("expected default port, got %q", cfg.Server.Port)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("expected default log level, got %q", cfg.Logging.Level)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
server:
  port: "9090"
  cors_origins:
    - https://quiz.example.com
database:
  driver: postgres
  url: postgres://db:5432/lifescore
storage:
  backend: s3
  bucket: reports
  region: eu-west-3
webhook:
  url: https://hooks.example.com/lead
  secret: s3cr3t
scoring:
  seed: 42
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != "9090" {
					t.Errorf("expected port 9090, got %q", cfg.Server.Port)
				}
				if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://quiz.example.com" {
					t.Errorf("unexpected CORS origins %v", cfg.Server.CORSOrigins)
				}
				if cfg.Database.Driver != "postgres" {
					t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
				}
				if cfg.Storage.Bucket != "reports" || cfg.Storage.Region != "eu-west-3" {
					t.Errorf("unexpected storage config %+v", cfg.Storage)
				}
				if cfg.Webhook.Secret != "s3cr3t" {
					t.Errorf("expected webhook secret, got %q", cfg.Webhook.Secret)
				}
				if cfg.Webhook.Timeout != 10 {
					t.Errorf("expected default webhook timeout kept, got %d", cfg.Webhook.Timeout)
				}
				if cfg.Scoring.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Scoring.Seed)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
		{
			name:    "cloud backend without bucket is invalid",
			yaml:    "storage:\n  backend: gcs\n",
			wantErr: true,
		},
		{
			name:    "unknown driver is invalid",
			yaml:    "database:\n  driver: oracle\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if !tc.noFile {
				if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://prod:5432/lifescore?sslmode=require")
	t.Setenv("LIFESCORE_CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("LIFESCORE_JWT_SECRET", "jwt")
	t.Setenv("LIFESCORE_LOG_DEV", "true")
	t.Setenv("LIFESCORE_SEED", "7")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "7000" {
		t.Errorf("expected port from PORT, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver inferred from DATABASE_URL, got %q", cfg.Database.Driver)
	}
	if got := strings.Join(cfg.Server.CORSOrigins, "|"); got != "https://a.example.com|https://b.example.com" {
		t.Errorf("unexpected CORS origins %q", got)
	}
	if cfg.Auth.JWTSecret != "jwt" {
		t.Errorf("expected JWT secret, got %q", cfg.Auth.JWTSecret)
	}
	if !cfg.Logging.Development {
		t.Error("expected development logging")
	}
	if cfg.Scoring.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Scoring.Seed)
	}
}

func TestLoadDriverWithoutURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIFESCORE_DB_DRIVER", "postgres")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty URL so the driver default applies, got %q", cfg.Database.URL)
	}

	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty URL from YAML with driver only, got %q", cfg.Database.URL)
	}
}

func TestLoadBadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIFESCORE_SEED", "minus-one")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("LIFESCORE_WEBHOOK_URL=https://hooks.example.com\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LIFESCORE_WEBHOOK_URL") })
	os.Unsetenv("LIFESCORE_WEBHOOK_URL")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Webhook.URL != "https://hooks.example.com" {
		t.Errorf("expected webhook URL from .env, got %q", cfg.Webhook.URL)
	}
}

func TestDirectoryFunctions(t *testing.T) {
	cache := CacheDir()
	reports := ReportDir()

	if !strings.HasSuffix(cache, filepath.Join(".cache", "lifescore")) {
		t.Errorf("CacheDir should end with .cache/lifescore, got %q", cache)
	}
	if reports != filepath.Join(cache, "reports") {
		t.Errorf("ReportDir = %q, want %q", reports, filepath.Join(cache, "reports"))
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".lifescore")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		got := FindConfigFile(root)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configDir := filepath.Join(root, ".lifescore")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		got := FindConfigFile(sub)
		if got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		root := t.TempDir()
		got := FindConfigFile(root)
		if got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}
