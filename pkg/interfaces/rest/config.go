package rest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the API server configuration
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Scheduler struct {
		LookaheadHorizonHours float64 `yaml:"lookahead_horizon_hours"`
		UnitHoldingCost       float64 `yaml:"unit_holding_cost"`
		DefaultSetupHours     float64 `yaml:"default_setup_hours"`
		UrgencyThresholdHours float64 `yaml:"urgency_threshold_hours"`
	} `yaml:"scheduler"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() *Config {
	config := &Config{}
	config.Server.Port = 8080
	config.Scheduler.LookaheadHorizonHours = 12
	config.Scheduler.UnitHoldingCost = 0.002
	config.Scheduler.DefaultSetupHours = 1.5
	config.Scheduler.UrgencyThresholdHours = 40
	return config
}

// LoadConfig reads a YAML configuration file, filling unset values with the
// defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultServerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if config.Server.Port <= 0 {
		return nil, fmt.Errorf("config file %s: server port must be positive", path)
	}
	return config, nil
}
