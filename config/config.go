package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment. Unlike services
// that require credentials to start, every page here works with the demo
// key, so a missing config file is fine unless a path was given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".astrodash"))
		}
		v.AddConfigPath("/etc/astrodash/")
	}

	// Environment overrides: ASTRODASH_LOGGING_LEVEL etc., plus the
	// conventional NASA_API_KEY for the deployment-time key.
	v.SetEnvPrefix("astrodash")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("nasa.api_key", "NASA_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Quotas NASA documents for the demo key and a registered key
	v.SetDefault("limits.demo_hourly", 30)
	v.SetDefault("limits.key_hourly", 1000)

	// Client defaults
	v.SetDefault("client.timeout", "15s")
	v.SetDefault("client.search_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Limits.DemoHourly <= 0 || cfg.Limits.KeyHourly <= 0 {
		return fmt.Errorf("limits must be positive")
	}

	if cfg.Client.Timeout <= 0 || cfg.Client.SearchTimeout <= 0 {
		return fmt.Errorf("client timeouts must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
