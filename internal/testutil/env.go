// Package testutil provides utilities for running installer tests in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

// Env describes the isolated directories created by SetupTestEnv.
type Env struct {
	Root       string // temp root, parent of everything below
	Home       string // $HOME
	ConfigHome string // $XDG_CONFIG_HOME
	InstallDir string // suggested install directory, not created
}

// SetupTestEnv points HOME and the XDG base directories at a fresh temp
// tree so tests never touch the user's real desktop, application menu or
// config file. Installer environment overrides are cleared.
//
// The cleanup is handled by t.TempDir and t.Setenv, so callers don't need
// to clean up manually.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Root:       root,
		Home:       filepath.Join(root, "home"),
		ConfigHome: filepath.Join(root, "home", ".config"),
		InstallDir: filepath.Join(root, "install"),
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	// Empty values fall back to $HOME/Desktop and $HOME/.local/share.
	t.Setenv("XDG_DESKTOP_DIR", "")
	t.Setenv("XDG_DATA_HOME", "")

	t.Setenv("HYPRISM_INSTALL_CONFIG", "")
	t.Setenv("HYPRISM_INSTALL_API_URL", "")
	t.Setenv("HYPRISM_INSTALL_LOG_LEVEL", "")
	t.Setenv("HYPRISM_INSTALL_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	// go-homedir caches the first lookup; tests change HOME per case.
	prev := homedir.DisableCache
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = prev })

	for _, dir := range []string{env.Home, env.ConfigHome} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}
