package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/GoSim-25-26J-441/project-tracker/internal/client"
)

const (
	envPrefix        = "PROJCTL_"
	defaultServerURL = "http://localhost:8080"
)

// Config is the CLI configuration.
type Config struct {
	ServerURL   string        `koanf:"server_url"`
	SessionFile string        `koanf:"session_file"`
	Timeout     time.Duration `koanf:"timeout"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "projctl"), nil
}

// LoadConfig reads the YAML file at path, then PROJCTL_* environment
// overrides (PROJCTL_SERVER_URL -> server_url). An empty path means
// ~/.config/projctl/config.yaml, which may be absent; an explicit path
// must exist.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = client.DefaultTimeout
	}
	if cfg.SessionFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		cfg.SessionFile = filepath.Join(dir, "session.json")
	}
	return nil
}
