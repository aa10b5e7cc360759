// Package config provides configuration structures and loading logic for the
// commission board binaries.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/polisai/commission-board/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Defaults applied before the file and environment are read.
const (
	DefaultListenAddress = ":8080"
	DefaultAPIBaseURL    = "http://127.0.0.1:8000"
	DefaultServiceName   = "commission-board"
	DefaultLogLevel      = "info"
)

// Config holds the global configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig points the loader at the commissions API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ServerConfig holds configuration for the development server.
type ServerConfig struct {
	ListenAddress string `yaml:"listen_address"`
	// UpstreamURL receives proxied /api/ requests. Empty falls back to api.base_url.
	UpstreamURL string `yaml:"upstream_url"`
	// StaticDir overrides the embedded page assets when set.
	StaticDir string `yaml:"static_dir"`
}

// TelemetryConfig holds configuration for OpenTelemetry.
type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
	Environment  string `yaml:"environment"`
	// Headers are sent with every OTLP export.
	Headers      map[string]string `yaml:"headers"`
	ResourceTags map[string]string `yaml:"resource_tags"`
	// MetricInterval is the metric push period, e.g. "15s".
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig holds configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: DefaultAPIBaseURL},
		Server: ServerConfig{
			ListenAddress: DefaultListenAddress,
		},
		Telemetry: TelemetryConfig{ServiceName: DefaultServiceName},
		Logging:   LoggingConfig{Level: DefaultLogLevel},
	}
}

// Load reads configuration from a file and applies environment variable
// overrides. An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		//nolint:gosec // Config file path is controlled by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document leaves unset.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("COMMISSIONS_API_BASE_URL"); val != "" {
		cfg.API.BaseURL = val
	}

	if val := os.Getenv("COMMISSIONS_LISTEN_ADDR"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("COMMISSIONS_UPSTREAM_URL"); val != "" {
		cfg.Server.UpstreamURL = val
	}
	if val := os.Getenv("COMMISSIONS_STATIC_DIR"); val != "" {
		cfg.Server.StaticDir = val
	}

	if val := os.Getenv("COMMISSIONS_OTLP_ENDPOINT"); val != "" {
		cfg.Telemetry.OTLPEndpoint = val
	}
	if val := os.Getenv("COMMISSIONS_OTLP_INSECURE"); val == "true" {
		cfg.Telemetry.Insecure = true
	}
	if val := os.Getenv("COMMISSIONS_ENVIRONMENT"); val != "" {
		cfg.Telemetry.Environment = val
	}

	if val := os.Getenv("COMMISSIONS_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
}

// Upstream returns the URL /api/ requests are proxied to.
func (c *Config) Upstream() string {
	if c.Server.UpstreamURL != "" {
		return c.Server.UpstreamURL
	}
	return c.API.BaseURL
}

// Validate performs validation of the entire configuration
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api configuration: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server configuration: %w", err)
	}

	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry configuration: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging configuration: %w", err)
	}

	return nil
}

// Validate checks the API base URL. An empty base URL means same-origin.
func (c *APIConfig) Validate() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		return nil
	}
	return validateHTTPURL("base_url", c.BaseURL)
}

// Validate performs validation of server configuration
func (c *ServerConfig) Validate() error {
	if strings.TrimSpace(c.ListenAddress) == "" {
		c.ListenAddress = DefaultListenAddress
	}

	c.UpstreamURL = strings.TrimSpace(c.UpstreamURL)
	if c.UpstreamURL != "" {
		if err := validateHTTPURL("upstream_url", c.UpstreamURL); err != nil {
			return err
		}
	}

	if c.StaticDir != "" {
		info, err := os.Stat(c.StaticDir)
		if err != nil {
			return fmt.Errorf("%w: static_dir: %v", domain.ErrConfigInvalid, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: static_dir %q is not a directory", domain.ErrConfigInvalid, c.StaticDir)
		}
	}

	return nil
}

// Validate performs validation of telemetry configuration
func (c *TelemetryConfig) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("%w: metric_interval must not be negative", domain.ErrConfigInvalid)
	}
	return nil
}

// Validate performs validation of logging configuration
func (c *LoggingConfig) Validate() error {
	if strings.TrimSpace(c.Level) == "" {
		c.Level = DefaultLogLevel
	}

	level := strings.TrimSpace(strings.ToLower(c.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Level = level // Normalize to lowercase
		return nil
	default:
		return fmt.Errorf("%w: invalid log level %q, supported levels: debug, info, warn, error", domain.ErrConfigInvalid, c.Level)
	}
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigInvalid, field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s %q must use http or https", domain.ErrConfigInvalid, field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %s %q has no host", domain.ErrConfigInvalid, field, raw)
	}
	return nil
}
