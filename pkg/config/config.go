package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Data struct {
		Path string `yaml:"path"`
	} `yaml:"data"`
	Forecast struct {
		DefaultHorizon int     `yaml:"default_horizon"`
		MaxHorizon     int     `yaml:"max_horizon"`
		Confidence     float64 `yaml:"confidence"`
		SeasonalPeriod int     `yaml:"seasonal_period"`
	} `yaml:"forecast"`
	Refresh struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"refresh"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SALES_DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Refresh.Interval = d
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Forecast.DefaultHorizon == 0 {
		c.Forecast.DefaultHorizon = 30
	}
	if c.Forecast.MaxHorizon == 0 {
		c.Forecast.MaxHorizon = 365
	}
	if c.Forecast.Confidence == 0 {
		c.Forecast.Confidence = 0.95
	}
	if c.Forecast.SeasonalPeriod == 0 {
		c.Forecast.SeasonalPeriod = 7
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = 24 * time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Forecast.DefaultHorizon <= 0 {
		return fmt.Errorf("forecast.default_horizon must be positive")
	}
	if c.Forecast.MaxHorizon < c.Forecast.DefaultHorizon {
		return fmt.Errorf("forecast.max_horizon must be >= forecast.default_horizon")
	}
	if c.Forecast.Confidence <= 0 || c.Forecast.Confidence >= 1 {
		return fmt.Errorf("forecast.confidence must be in (0, 1), got %v", c.Forecast.Confidence)
	}
	if c.Refresh.Enabled && c.Refresh.Interval < time.Minute {
		return fmt.Errorf("refresh.interval must be at least 1m, got %v", c.Refresh.Interval)
	}
	return nil
}
