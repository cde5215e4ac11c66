// Package config loads and validates console configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JakeFAU/quantum-job-console/internal/endpoint"
	"github.com/JakeFAU/quantum-job-console/internal/preview"
	"github.com/JakeFAU/quantum-job-console/internal/probe"
	"github.com/JakeFAU/quantum-job-console/internal/transport"
)

// EnvPrefix namespaces environment overrides, e.g. QJOBS_API_BASE_URL.
const EnvPrefix = "QJOBS"

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Console ConsoleConfig `mapstructure:"console"`
	Preview PreviewConfig `mapstructure:"preview"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig points at the job API.
type APIConfig struct {
	// BaseURL overrides endpoint.DefaultBaseURL when non-blank.
	BaseURL     string   `mapstructure:"base_url"`
	HealthPaths []string `mapstructure:"health_paths"`
}

// HTTPConfig configures the outbound client.
type HTTPConfig struct {
	// TimeoutSeconds bounds each request; 0 waits until the context ends.
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// ConsoleConfig controls the local HTTP console.
type ConsoleConfig struct {
	Port int `mapstructure:"port"`
}

// PreviewConfig sets display truncation.
type PreviewConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

// WatchConfig paces `qjobs watch`.
type WatchConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.health_paths", probe.DefaultPaths)
	v.SetDefault("http.timeout_seconds", 0)
	v.SetDefault("http.user_agent", transport.DefaultUserAgent)
	v.SetDefault("console.port", 8080)
	v.SetDefault("preview.max_length", preview.DefaultMaxLength)
	v.SetDefault("watch.interval_seconds", 5)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	// Checked after resolution so blank or slash-only values take the default.
	base := endpoint.Resolve(c.API.BaseURL).Base
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if len(c.API.HealthPaths) == 0 {
		return fmt.Errorf("api.health_paths must not be empty")
	}
	for _, p := range c.API.HealthPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("api.health_paths must not contain blank entries")
		}
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("http.timeout_seconds must be >= 0")
	}
	if c.Console.Port <= 0 || c.Console.Port > 65535 {
		return fmt.Errorf("console.port must be in 1..65535")
	}
	if c.Preview.MaxLength <= 0 {
		return fmt.Errorf("preview.max_length must be > 0")
	}
	if c.Watch.IntervalSeconds <= 0 {
		return fmt.Errorf("watch.interval_seconds must be > 0")
	}
	return nil
}

// Endpoint resolves the configured API base.
func (c Config) Endpoint() endpoint.Config {
	return endpoint.Resolve(c.API.BaseURL)
}

// RequestTimeout converts http.timeout_seconds into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// WatchInterval converts watch.interval_seconds into a duration.
func (c Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.IntervalSeconds) * time.Second
}
