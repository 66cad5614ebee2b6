package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the CLI tool configuration, read from fabricate.yaml.
type Config struct {
	Version   string   `json:"version" yaml:"version" mapstructure:"version"`
	SchemaDir string   `json:"schema_dir" yaml:"schema_dir" mapstructure:"schema_dir"`
	Seed      int64    `json:"seed" yaml:"seed" mapstructure:"seed"`
	Count     int      `json:"count" yaml:"count" mapstructure:"count"`
	Batch     int      `json:"batch" yaml:"batch" mapstructure:"batch"`
	Sink      SinkConf `json:"sink" yaml:"sink" mapstructure:"sink"`
}

// SinkConf selects where the seed command persists documents.
type SinkConf struct {
	// Provider is one of memory, mongodb, postgresql, mysql, sqlite.
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	// URLEnv names the environment variable holding the connection URL.
	URLEnv string `json:"url_env" yaml:"url_env" mapstructure:"url_env"`
	// Database is the target database name (mongodb only).
	Database string `json:"database" yaml:"database" mapstructure:"database"`
}

// Load unmarshals the viper-backed configuration and applies defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.SchemaDir == "" {
		cfg.SchemaDir = "schemas"
	}
	if cfg.Count <= 0 {
		cfg.Count = 10
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}
	if cfg.Sink.Provider == "" {
		cfg.Sink.Provider = "memory"
	}
	if cfg.Sink.URLEnv == "" {
		cfg.Sink.URLEnv = "DATABASE_URL"
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration a fresh project starts with.
func DefaultConfig() *Config {
	return &Config{
		Version:   "1",
		SchemaDir: "schemas",
		Count:     10,
		Batch:     100,
		Sink: SinkConf{
			Provider: "memory",
			URLEnv:   "DATABASE_URL",
		},
	}
}

// GetSinkURL resolves the connection URL from the configured environment
// variable.
func (c *Config) GetSinkURL() (string, error) {
	if c.Sink.Provider == "memory" {
		return "", nil
	}
	url := os.Getenv(c.Sink.URLEnv)
	if url == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.Sink.URLEnv)
	}
	return url, nil
}
