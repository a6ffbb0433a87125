package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default locations used when no flags are given.
const (
	DefaultConfigPath = "simdb.yaml"
	DefaultDatabase   = "simdb.db"
)

// Config is the simdb.yaml file format.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`
}

// LoadConfig reads and parses a simdb.yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
