// Package config handles loading and managing lifescore configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for lifescore.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Scoring  ScoringConfig  `yaml:"scoring"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	CORSOrigins     []string `yaml:"cors_origins"`
	ReportCacheSize int      `yaml:"report_cache_size"`
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // seconds
}

// DatabaseConfig selects the SQL backend.
type DatabaseConfig struct {
	Driver  string `yaml:"driver"` // postgres | sqlite
	// URL is the driver DSN. Empty selects the driver's local default.
	URL     string `yaml:"url"`
	Migrate bool   `yaml:"migrate"`
}

// StorageConfig selects where exported reports are written.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local | s3 | gcs
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
}

// WebhookConfig controls the outbound lead notification.
type WebhookConfig struct {
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
	Source  string `yaml:"source"`
	Timeout int    `yaml:"timeout"` // seconds
}

// AuthConfig holds the admin token settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// Seed pins the random picks of shock phrases and alternatives.
	// Zero means a fresh random source per process.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			CORSOrigins:     []string{"http://localhost:3000"},
			ReportCacheSize: 256,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Migrate: true,
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: ReportDir(),
		},
		Webhook: WebhookConfig{
			Source:  "lifescore",
			Timeout: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file from the given path and applies environment
// overrides. If the file does not exist, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment. Missing files are ignored; variables already set
// take precedence.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q: want postgres or sqlite", c.Database.Driver))
	}
	switch c.Storage.Backend {
	case "local":
		if c.Storage.LocalPath == "" {
			errs = append(errs, errors.New("storage.local_path is required for the local backend"))
		}
	case "s3", "gcs":
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("storage.bucket is required for the %s backend", c.Storage.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: want local, s3 or gcs", c.Storage.Backend))
	}
	if c.Server.ReportCacheSize < 0 {
		errs = append(errs, errors.New("server.report_cache_size must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = envOr("PORT", envOr("LIFESCORE_PORT", c.Server.Port))
	c.Server.CORSOrigins = csvOr("LIFESCORE_CORS_ORIGINS", c.Server.CORSOrigins)

	c.Database.Driver = envOr("LIFESCORE_DB_DRIVER", c.Database.Driver)
	c.Database.URL = envOr("DATABASE_URL", c.Database.URL)
	if v := os.Getenv("DATABASE_URL"); strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://") {
		c.Database.Driver = "postgres"
	}

	c.Storage.Backend = envOr("LIFESCORE_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.LocalPath = envOr("LOCAL_STORAGE_PATH", c.Storage.LocalPath)
	c.Storage.Bucket = envOr("LIFESCORE_STORAGE_BUCKET", c.Storage.Bucket)
	c.Storage.Prefix = envOr("LIFESCORE_STORAGE_PREFIX", c.Storage.Prefix)
	c.Storage.Region = envOr("AWS_REGION", c.Storage.Region)
	c.Storage.Endpoint = envOr("LIFESCORE_S3_ENDPOINT", c.Storage.Endpoint)

	c.Webhook.URL = envOr("LIFESCORE_WEBHOOK_URL", c.Webhook.URL)
	c.Webhook.Secret = envOr("LIFESCORE_WEBHOOK_SECRET", c.Webhook.Secret)

	c.Auth.JWTSecret = envOr("LIFESCORE_JWT_SECRET", c.Auth.JWTSecret)

	c.Logging.Level = envOr("LIFESCORE_LOG_LEVEL", c.Logging.Level)
	c.Logging.Development = envBool("LIFESCORE_LOG_DEV", c.Logging.Development)

	if v := os.Getenv("LIFESCORE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LIFESCORE_SEED: %w", err)
		}
		c.Scoring.Seed = seed
	}
	return nil
}

// FindConfigFile looks for .lifescore/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".lifescore", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user cache directory.
// Uses ~/.cache/lifescore/ to keep exports out of the working tree.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "lifescore")
}

// ReportDir returns the directory saved reports are written to.
func ReportDir() string {
	return filepath.Join(CacheDir(), "reports")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
