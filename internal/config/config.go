// Package config loads the console configuration from YAML, environment
// variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/schoolconsole/internal/pagination"
)

// Environment variables that override the configuration file.
const (
	EnvHome       = "SCHOOLCONSOLE_HOME"
	EnvAPIURL     = "SCHOOLCONSOLE_API_URL"
	EnvAPIToken   = "SCHOOLCONSOLE_API_TOKEN"
	EnvAPITimeout = "SCHOOLCONSOLE_API_TIMEOUT"
	EnvLogLevel   = "SCHOOLCONSOLE_LOG_LEVEL"
	EnvLogFormat  = "SCHOOLCONSOLE_LOG_FORMAT"
)

// Defaults.
const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 15 * time.Second
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrInvalidBaseURL    = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout    = errors.New("api.timeout must be positive")
	ErrInvalidPerPage    = errors.New("ui.items_per_page must be positive")
	ErrInvalidMaxVisible = errors.New("ui.max_visible_pages must be positive")
)

// Config is the full console configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes how to reach the school backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Token   string        `yaml:"token,omitempty"`
}

// UIConfig holds list presentation settings.
type UIConfig struct {
	ItemsPerPage    int `yaml:"items_per_page"`
	MaxVisiblePages int `yaml:"max_visible_pages"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string      `yaml:"level"`
	Format string      `yaml:"format"`
	File   string      `yaml:"file,omitempty"`
	Audit  AuditConfig `yaml:"audit"`
}

// AuditConfig controls the mutation audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		UI: UIConfig{
			ItemsPerPage:    pagination.DefaultPerPage,
			MaxVisiblePages: pagination.DefaultMaxVisible,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// New returns the defaults overlaid with the user config file (if present)
// and the environment. A malformed config file is ignored in favor of the defaults.
func New() *Config {
	cfg := Default()

	if dir, err := GetConfigDir(); err == nil {
		path := filepath.Join(dir, configFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := cfg.Load(path); loadErr != nil {
				cfg = Default()
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Load reads a full YAML config file onto c.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv applies environment overrides using lookupEnv.
// Unparseable timeouts are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvAPIToken); ok && v != "" {
		c.API.Token = v
	}
	if v, ok := lookupEnv(EnvAPITimeout); ok && v != "" {
		if d, err := parseTimeout(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// parseTimeout accepts Go durations ("30s") or plain seconds ("30").
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate checks the configuration for values the console cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.API.Timeout)
	}
	if c.UI.ItemsPerPage <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPerPage, c.UI.ItemsPerPage)
	}
	if c.UI.MaxVisiblePages <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxVisible, c.UI.MaxVisiblePages)
	}
	return nil
}

// GetConfigDir returns the console configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".schoolconsole"), nil
}

// GetConfigPath returns the path of the user config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
