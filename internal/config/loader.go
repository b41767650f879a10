package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// ApplyDefaults fills in unset config values.
func ApplyDefaults(cfg *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "tcp://localhost:4004"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
