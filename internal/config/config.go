// Package config loads optional CLI defaults from a YAML file, the same
// "defaults-then-override" pattern the rest of the corpus uses for its
// command-line entry points.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds default flag values for the qrcodec CLI.
type Config struct {
	Level      string `yaml:"level"`
	ModuleSize int    `yaml:"module_size"`
	QuietZone  int    `yaml:"quiet_zone"`
	Version    int    `yaml:"version"`
	Terminal   bool   `yaml:"terminal"`
}

// Defaults returns a Config populated with every default value.
func Defaults() *Config {
	return &Config{
		Level:      "M",
		ModuleSize: 2,
		QuietZone:  4,
	}
}

// Load reads cfg from path, starting from Defaults() so a partial file
// only overrides what it specifies. A missing file is not an error;
// Load returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
