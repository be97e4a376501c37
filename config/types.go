package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	NASA    NASAConfig    `mapstructure:"nasa"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Client  ClientConfig  `mapstructure:"client"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// NASAConfig holds the deployment-time NASA API key. An empty key means
// "not configured": key resolution falls through to the persisted user key
// and finally the demo key.
type NASAConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LimitsConfig holds the documented hourly quotas quoted in rate-limit error
// messages. These mirror upstream policy and may drift from it; they are
// configuration, not behavior.
type LimitsConfig struct {
	DemoHourly int `mapstructure:"demo_hourly"`
	KeyHourly  int `mapstructure:"key_hourly"`
}

// ClientConfig holds HTTP timeouts. Timeout covers simple lookups;
// SearchTimeout covers the search/listing hosts that return larger payloads.
type ClientConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
