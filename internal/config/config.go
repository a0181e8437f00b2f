// Package config loads todolist settings from YAML, .env files and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/WillyV3/todolist/internal/kv"
	"github.com/WillyV3/todolist/internal/todo"
)

const (
	configFileName = "config.yaml"
	dataFileName   = ".todolist.json"
	envPrefix      = "TODOLIST_"
)

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
	Key     string `yaml:"key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	// Watch reloads the list when the backing file changes on disk.
	Watch bool `yaml:"watch"`
}

// DefaultPath is ~/.config/todolist/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, "todolist", configFileName)
}

func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Storage: StorageConfig{
			Backend: kv.BackendFile,
			Path:    filepath.Join(home, dataFileName),
			Key:     todo.DefaultKey,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "todolist.log"),
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment variables from .env and the process override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// .env never overrides variables already set in the process.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str("BACKEND", &c.Storage.Backend)
	str("PATH", &c.Storage.Path)
	str("DSN", &c.Storage.DSN)
	str("KEY", &c.Storage.Key)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("METRICS_ADDR", &c.Metrics.Addr)

	if v, ok := os.LookupEnv(envPrefix + "WATCH"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sWATCH: %w", envPrefix, err)
		}
		c.Watch = b
	}
	return nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case kv.BackendMemory:
	case kv.BackendFile, kv.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case kv.BackendMySQL:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the mysql backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// KVOptions maps the storage section onto kv.Open.
func (c *Config) KVOptions() kv.Options {
	return kv.Options{
		Backend: c.Storage.Backend,
		Path:    c.Storage.Path,
		DSN:     c.Storage.DSN,
	}
}

// WatchPath is the file to watch for external changes, or "" when the
// backend has no single file worth watching.
func (c *Config) WatchPath() string {
	if !c.Watch {
		return ""
	}
	switch c.Storage.Backend {
	case kv.BackendFile, kv.BackendSQLite:
		return c.Storage.Path
	}
	return ""
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
