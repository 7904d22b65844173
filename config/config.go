package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config is the main configuration structure
type Config struct {
	InputPort    string `json:"inputPort,omitempty"`  // substring match, empty = first port
	OutputPort   string `json:"outputPort,omitempty"` // substring match, empty = first port
	Instrument   int    `json:"instrument"`           // GM program 0-127
	DrumsEnabled bool   `json:"drumsEnabled"`
	DrumKit      string `json:"drumKit,omitempty"`
	TickRate     int    `json:"tickRate,omitempty"`  // control loop Hz
	ReadBatch    int    `json:"readBatch,omitempty"` // input events per tick
	RepeatLoop   bool   `json:"repeatLoop"`
	Palette      string `json:"palette,omitempty"` // GIMP .gpl file
	Debug        bool   `json:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instrument:   0,
		DrumsEnabled: true,
		DrumKit:      "mpk",
		TickRate:     120,
		ReadBatch:    32,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-looper"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults; fields
// absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.Validate()

	return cfg, nil
}

// Validate clamps out-of-range values back into range
func (c *Config) Validate() {
	d := DefaultConfig()
	if c.Instrument < 0 {
		c.Instrument = 0
	}
	if c.Instrument > 127 {
		c.Instrument = 127
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.TickRate > 1000 {
		c.TickRate = 1000
	}
	if c.ReadBatch <= 0 {
		c.ReadBatch = d.ReadBatch
	}
	if c.DrumKit == "" {
		c.DrumKit = d.DrumKit
	}
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return errors.Wrapf(os.WriteFile(path, data, 0644), "write config %s", path)
}
