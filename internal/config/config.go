package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ConfigFiles are the config file names looked up in the working directory.
var ConfigFiles = []string{".cognishieldrc.json", ".cognishieldrc.yaml", ".cognishieldrc.yml"}

// Config represents the cognishield configuration
type Config struct {
	Thresholds string          `mapstructure:"thresholds" json:"thresholds,omitempty"`
	Format     string          `mapstructure:"format" json:"format"`
	Output     string          `mapstructure:"output" json:"output,omitempty"`
	Quiet      bool            `mapstructure:"quiet" json:"quiet"`
	Verbose    bool            `mapstructure:"verbose" json:"verbose"`
	LogLevel   string          `mapstructure:"logLevel" json:"logLevel"`
	LogFile    string          `mapstructure:"logFile" json:"logFile,omitempty"`
	Countdown  CountdownConfig `mapstructure:"countdown" json:"countdown"`
	Limits     LimitsConfig    `mapstructure:"limits" json:"limits"`
	Scenarios  ScenarioConfig  `mapstructure:"scenarios" json:"scenarios"`
}

// CountdownConfig configures the emergency acknowledgement window
type CountdownConfig struct {
	Seconds  int           `mapstructure:"seconds" json:"seconds"`
	Interval time.Duration `mapstructure:"interval" json:"interval"`
}

// LimitsConfig configures the two scoring rules that have no breakpoint table
type LimitsConfig struct {
	HeartRateDrop float64 `mapstructure:"heartRateDrop" json:"heartRateDrop"`
	Inactivity    float64 `mapstructure:"inactivity" json:"inactivity"`
}

// ScenarioConfig configures scenario file discovery
type ScenarioConfig struct {
	Root     string   `mapstructure:"root" json:"root"`
	Patterns []string `mapstructure:"patterns" json:"patterns,omitempty"`
}

// LoadConfig loads configuration from defaults, the first config file found
// (or configFile if set), and COGNISHIELD_* environment variables.
func LoadConfig(configFile string) (*Config, error) {
	// Set default values
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("logLevel", "warn")
	viper.SetDefault("countdown.seconds", 10)
	viper.SetDefault("countdown.interval", time.Second)
	viper.SetDefault("limits.heartRateDrop", 20.0)
	viper.SetDefault("limits.inactivity", 10.0)
	viper.SetDefault("scenarios.root", ".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		for _, path := range ConfigFiles {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}

	// Environment variables
	viper.SetEnvPrefix("COGNISHIELD")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s. Must be 'debug', 'info', 'warn', or 'error'", config.LogLevel)
	}

	if config.Countdown.Seconds < 1 {
		return fmt.Errorf("countdown.seconds must be at least 1")
	}
	if config.Countdown.Interval <= 0 {
		return fmt.Errorf("countdown.interval must be positive")
	}

	if config.Limits.HeartRateDrop < 0 || config.Limits.Inactivity < 0 {
		return fmt.Errorf("limits must not be negative")
	}

	if config.Format == "markdown" && config.Output == "" {
		return fmt.Errorf("output file is required when format is 'markdown'")
	}

	return nil
}

// SaveConfig saves the configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
