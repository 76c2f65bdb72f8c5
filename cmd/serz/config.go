package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/guangie88/serz"
)

// DefaultConfigFile is read from the working directory when --config is not
// given.
const DefaultConfigFile = ".serz.yaml"

// Config holds defaults for flags left unset on the command line.
type Config struct {
	From          string `yaml:"from"`
	To            string `yaml:"to"`
	KeyCase       string `yaml:"key_case"`
	Root          string `yaml:"root"`
	Compact       bool   `yaml:"compact"`
	MaxDepth      int    `yaml:"max_depth"`
	DuplicateKeys string `yaml:"duplicate_keys"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Root:          "root",
		DuplicateKeys: "first",
	}
}

// LoadConfig reads path over the built-in defaults. A missing file yields
// the defaults unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := NewConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if err := checkFormat(c.From); err != nil {
		return err
	}
	if err := checkFormat(c.To); err != nil {
		return err
	}
	if _, err := serz.KeyCase(c.KeyCase).Func(); err != nil {
		return err
	}
	switch c.DuplicateKeys {
	case "", "first", "error":
	default:
		return fmt.Errorf("duplicate_keys must be \"first\" or \"error\", got %q", c.DuplicateKeys)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	return nil
}

var formats = []string{"json", "yaml", "xml"}

func checkFormat(f string) error {
	if f == "" || slices.Contains(formats, f) {
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}
