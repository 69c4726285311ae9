package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/platform"
	"github.com/mitchellh/go-homedir"
)

// ConfigPath returns the Lua config file location: $HYPRISM_INSTALL_CONFIG,
// else $XDG_CONFIG_HOME/hyprism-install/config.lua, else
// ~/.config/hyprism-install/config.lua.
func ConfigPath() (string, error) {
	if p := getStringEnv(EnvConfigPath, ""); p != "" {
		return ExpandPath(p)
	}

	configHome := getStringEnv("XDG_CONFIG_HOME", "")
	if configHome == "" || !filepath.IsAbs(configHome) {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "hyprism-install", "config.lua"), nil
}

// Load builds the effective configuration for info. A missing config file is
// not an error; an explicitly named one ($HYPRISM_INSTALL_CONFIG) must exist.
func Load(ctx context.Context, info *platform.Info, log logging.Logger) (*Config, error) {
	log = logging.OrNop(log)
	cfg := Default(info)

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		log.Debug("loading config file", "path", path)
		cfg, err = NewParser(info).ParseFile(ctx, path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist) && getStringEnv(EnvConfigPath, "") == "":
		log.Debug("no config file, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("stat config: %w", statErr)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with environment variables that are set.
func applyEnv(cfg *Config) {
	cfg.APIBaseURL = getStringEnv(EnvAPIURL, cfg.APIBaseURL)
	cfg.LogLevel = getStringEnv(EnvLogLevel, cfg.LogLevel)
	cfg.GitHubToken = getStringEnv(EnvToken, getStringEnv(EnvGitHubToken, cfg.GitHubToken))
}

func getStringEnv(envName string, defaultValue string) string {
	env, ok := os.LookupEnv(envName)
	if !ok || env == "" {
		return defaultValue
	}
	return env
}

// ExpandPath expands a leading "~" and returns an absolute, cleaned path.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}
