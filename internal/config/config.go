// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Simulation SimulationConfig `json:"simulation"`
}

type ServerConfig struct {
	Port int `json:"port"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Port)
	}
	return nil
}

type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

func (c *DatabaseConfig) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}

// SimulationConfig carries the forecasting parameters.
type SimulationConfig struct {
	// ProjectLife is the forecast horizon in years.
	ProjectLife int `json:"projectLife"`
	// Location keys the solar reference dataset.
	Location string `json:"location"`
	// SolarDatasetPath points to the irradiance reference JSON file.
	SolarDatasetPath string `json:"solarDatasetPath"`
}

func (c *SimulationConfig) SetDefaults() {
	if c.ProjectLife == 0 {
		c.ProjectLife = 3
	}
	if c.Location == "" {
		c.Location = "UK"
	}
	if c.SolarDatasetPath == "" {
		c.SolarDatasetPath = "data/solar_profiles.json"
	}
}

func (c *SimulationConfig) Validate() error {
	if c.ProjectLife < 1 {
		return fmt.Errorf("simulation.projectLife must be positive: %d", c.ProjectLife)
	}
	return nil
}

// Load reads configuration from path, applies EVEA_-prefixed environment
// overrides, then defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("EVEA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evea_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Simulation.SetDefaults()
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
