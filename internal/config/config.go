package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/michelson"
)

const envPrefix = "michelson"

// Output formats for decoded values.
const (
	OutputJSON = "json"
	OutputHex  = "hex"
)

// Config holds CLI settings. Values come from defaults, then the YAML file,
// then MICHELSON_* environment variables.
type Config struct {
	LogLevel      string `yaml:"logLevel"      split_words:"true"`
	LogFile       string `yaml:"logFile"       split_words:"true"`
	Output        string `yaml:"output"`
	MaxDepth      int    `yaml:"maxDepth"      split_words:"true"`
	LogMaxSizeMB  int    `yaml:"logMaxSizeMB"  envconfig:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `yaml:"logMaxBackups" split_words:"true"`
	Pretty        bool   `yaml:"pretty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		Output:        OutputJSON,
		MaxDepth:      michelson.DefaultMaxDepth,
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
	}
}

// Load reads configFile, or ~/.michelson/michelson.yaml when configFile is
// empty and that file exists, and applies environment overrides.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".michelson", "michelson.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("maxDepth must be positive, got %d", c.MaxDepth))
	}
	switch c.Output {
	case OutputJSON, OutputHex:
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("output must be %q or %q, got %q", OutputJSON, OutputHex, c.Output))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogMaxSizeMB < 1 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("logMaxSizeMB must be positive, got %d", c.LogMaxSizeMB))
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "logLevel")
	}
	return lvl, nil
}
