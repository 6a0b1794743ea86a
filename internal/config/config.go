package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DataConfig configures the emissions dataset load.
type DataConfig struct {
	// Path to the emissions CSV file.
	Path string `yaml:"path"`

	// TopRegions is the number of regions pre-selected for the
	// dashboard's initial view.
	TopRegions int `yaml:"top_regions"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Data:    DataConfig{Path: "carbon_emissions_china.csv", TopRegions: 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML config at path over the defaults. A missing file
// is not an error; the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Blank or nonsensical fields fall back to defaults rather than
	// breaking startup.
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Data.Path == "" {
		cfg.Data.Path = def.Data.Path
	}
	if cfg.Data.TopRegions <= 0 {
		cfg.Data.TopRegions = def.Data.TopRegions
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}

	return cfg, nil
}
