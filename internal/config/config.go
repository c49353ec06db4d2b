// Package config loads robotforth settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/robotforth"
)

// Environment variables consulted by the command line tools.
const (
	EnvConfig  = "ROBOTFORTH_CONFIG"
	EnvScripts = "ROBOTFORTH_SCRIPTS"
)

// Config represents the interpreter configuration.
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Scripts     ScriptsConfig     `toml:"scripts"`
	Log         LogConfig         `toml:"log"`
}

// InterpreterConfig contains language runtime settings.
type InterpreterConfig struct {
	Kinds           []string `toml:"kinds"`
	MailboxCapacity int      `toml:"mailbox_capacity"`
	Seed            uint64   `toml:"seed"` // 0 seeds randomly
}

// ScriptsConfig contains script storage settings.
type ScriptsConfig struct {
	Dir       string `toml:"dir"` // empty uses the embedded scripts
	CacheSize int    `toml:"cache_size"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Trace bool `toml:"trace"`
	Print bool `toml:"print"` // route print output through the log
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			Kinds:           append([]string(nil), robotforth.DefaultKinds...),
			MailboxCapacity: robotforth.DefaultMailboxCapacity,
		},
		Scripts: ScriptsConfig{
			CacheSize: 64,
		},
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

// Parse loads configuration from TOML text.
func Parse(data string) (*Config, error) {
	cfg := New()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadEnv loads the file named by $ROBOTFORTH_CONFIG, or returns defaults if
// it is unset; $ROBOTFORTH_SCRIPTS overrides the scripts directory.
func LoadEnv() (*Config, error) {
	cfg := New()
	if path := os.Getenv(EnvConfig); path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if dir := os.Getenv(EnvScripts); dir != "" {
		cfg.Scripts.Dir = dir
	}
	return cfg, nil
}

// Validate checks for settings that no interpreter could run with.
func (c *Config) Validate() error {
	if len(c.Interpreter.Kinds) == 0 {
		return errors.New("interpreter.kinds must not be empty")
	}
	seen := make(map[string]bool, len(c.Interpreter.Kinds))
	for _, kind := range c.Interpreter.Kinds {
		if kind == "" {
			return errors.New("interpreter.kinds contains an empty kind")
		}
		if seen[kind] {
			return fmt.Errorf("interpreter.kinds lists %q twice", kind)
		}
		seen[kind] = true
	}
	if c.Interpreter.MailboxCapacity < 0 {
		return fmt.Errorf("interpreter.mailbox_capacity must not be negative, got %d", c.Interpreter.MailboxCapacity)
	}
	if c.Scripts.CacheSize <= 0 {
		return fmt.Errorf("scripts.cache_size must be positive, got %d", c.Scripts.CacheSize)
	}
	return nil
}

// Options returns the builder options these settings call for.
func (c *Config) Options() []robotforth.Option {
	opts := []robotforth.Option{
		robotforth.WithKinds(c.Interpreter.Kinds...),
		robotforth.WithMailboxCapacity(c.Interpreter.MailboxCapacity),
	}
	if c.Interpreter.Seed != 0 {
		opts = append(opts, robotforth.WithSeed(c.Interpreter.Seed))
	}
	return opts
}
