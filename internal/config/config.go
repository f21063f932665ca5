// Package config loads the spotlight API configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultModelTimeoutMs = 10000
	defaultTargetCount    = 8
	defaultOMDbTimeoutMs  = 1000
	defaultKeyPrefix      = "spotlight:"

	// IdentityGoogle mints ID tokens from service account credentials.
	IdentityGoogle = "google"
	// IdentityStatic sends one configured bearer token to every model.
	IdentityStatic = "static"
)

// Config holds the spotlight API configuration.
type Config struct {
	HTTP       HTTPConfig             `yaml:"http"`
	Database   DatabaseConfig         `yaml:"database"`
	Storage    StorageConfig          `yaml:"storage"`
	Auth       AuthConfig             `yaml:"auth"`
	Identity   IdentityConfig         `yaml:"identity"`
	Models     map[string]ModelConfig `yaml:"models"`
	Catalogs   CatalogsConfig         `yaml:"catalogs"`
	Enrichment EnrichmentConfig       `yaml:"enrichment"`
	Logging    LoggingConfig          `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds inbound API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds profile store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// IdentityConfig selects how outbound model calls are authenticated.
type IdentityConfig struct {
	Mode            string `yaml:"mode"` // google (default), static
	CredentialsFile string `yaml:"credentials_file"`
	StaticToken     string `yaml:"static_token"`
}

// ModelConfig describes one model service.
type ModelConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	TargetCount int    `yaml:"target_count"`
	// FillerQuery is the JSON body for padding requests. Empty disables padding.
	FillerQuery string `yaml:"filler_query"`
}

// Timeout returns the per-call timeout.
func (m ModelConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

// CatalogsConfig holds metadata catalog settings.
type CatalogsConfig struct {
	GoogleBooks CatalogConfig `yaml:"google_books"`
	OMDb        CatalogConfig `yaml:"omdb"`
}

// CatalogConfig describes one metadata catalog.
type CatalogConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	TimeoutMs int    `yaml:"timeout_ms"` // 0 = no timeout
}

// Timeout returns the per-lookup timeout.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// EnrichmentConfig holds enrichment fan-out settings.
type EnrichmentConfig struct {
	MaxConcurrency int `yaml:"max_concurrency"` // 0 = unbounded
}

// defaultFillers are the "no specific preference" queries per domain.
var defaultFillers = map[string]string{
	"books":  `{"text":" "}`,
	"travel": `{"text":"random"}`,
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = defaultKeyPrefix
	}
	if c.Identity.Mode == "" {
		c.Identity.Mode = IdentityGoogle
	}
	if c.Catalogs.OMDb.TimeoutMs <= 0 {
		c.Catalogs.OMDb.TimeoutMs = defaultOMDbTimeoutMs
	}
	for name, m := range c.Models {
		if m.TimeoutMs <= 0 {
			m.TimeoutMs = defaultModelTimeoutMs
		}
		if m.TargetCount <= 0 {
			m.TargetCount = defaultTargetCount
		}
		if m.FillerQuery == "" {
			m.FillerQuery = defaultFillers[name]
		}
		m.BaseURL = strings.TrimRight(m.BaseURL, "/")
		c.Models[name] = m
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Identity.Mode {
	case IdentityGoogle:
	case IdentityStatic:
		if c.Identity.StaticToken == "" {
			return fmt.Errorf("identity.static_token is required in static mode")
		}
	default:
		return fmt.Errorf("identity.mode must be %q or %q, got %q", IdentityGoogle, IdentityStatic, c.Identity.Mode)
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("models must configure at least one model service")
	}
	for name, m := range c.Models {
		switch name {
		case "books", "movies", "travel", "stress":
		default:
			return fmt.Errorf("models.%s: unknown model service", name)
		}
		if m.BaseURL == "" {
			return fmt.Errorf("models.%s.base_url is required", name)
		}
	}
	if c.Enrichment.MaxConcurrency < 0 {
		return fmt.Errorf("enrichment.max_concurrency must be >= 0, got %d", c.Enrichment.MaxConcurrency)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
