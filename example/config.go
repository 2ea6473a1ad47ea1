package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swdee/go-vl53l0x"
)

// Config holds the sampler settings loaded from YAML
type Config struct {
	Bus     string `yaml:"bus"`
	Address uint8  `yaml:"address"`

	// PeriodMs selects timed continuous ranging when non zero
	PeriodMs   uint32        `yaml:"period_ms"`
	Continuous bool          `yaml:"continuous"`
	Samples    int           `yaml:"samples"`
	Interval   time.Duration `yaml:"interval"`
	Timeout    time.Duration `yaml:"timeout"`

	// SignalRateLimit in MCPS, zero keeps the Init default
	SignalRateLimit float32 `yaml:"signal_rate_limit"`

	XShut XShutConfig `yaml:"xshut"`
}

// XShutConfig names the GPIO line wired to the sensor's XSHUT pin
type XShutConfig struct {
	Enable bool   `yaml:"enable"`
	Chip   string `yaml:"chip"`
	Line   int    `yaml:"line"`
}

// defaultConfig is used when no config file is given
func defaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Bus == "" {
		c.Bus = "/dev/i2c-1"
	}
	if c.Address == 0 {
		c.Address = vl53l0x.Address
	}
	if c.Samples <= 0 {
		c.Samples = 10
	}
	if c.Interval <= 0 {
		c.Interval = 200 * time.Millisecond
	}
	if c.Timeout <= 0 {
		c.Timeout = 500 * time.Millisecond
	}
	if c.XShut.Chip == "" {
		c.XShut.Chip = "gpiochip0"
	}
}

// Load reads and validates a YAML config file
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()

	if cfg.Address > 0x7F {
		return Config{}, fmt.Errorf("address 0x%X is not a 7-bit I2C address", cfg.Address)
	}
	if cfg.SignalRateLimit < 0 || cfg.SignalRateLimit >= vl53l0x.MaxSignalRateLimit {
		return Config{}, fmt.Errorf("signal_rate_limit %v out of range", cfg.SignalRateLimit)
	}
	if cfg.XShut.Enable && cfg.XShut.Line < 0 {
		return Config{}, fmt.Errorf("xshut.line must be >= 0")
	}

	return cfg, nil
}
