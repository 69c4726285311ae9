package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/platform"
)

// Config is the complete installer configuration.
type Config struct {
	// Release source
	Owner      string
	Repo       string
	UserAgent  string
	APIBaseURL string
	// GitHubToken is read from the environment only, never from the Lua file.
	GitHubToken string

	// InstallDir may start with "~"; see ExpandPath.
	InstallDir string

	Asset    AssetConfig
	Shortcut ShortcutConfig

	// LogLevel is a zap level name; empty means the logging default.
	LogLevel string
}

// AssetConfig selects the release asset.
type AssetConfig struct {
	Suffix string
	Arch   string
}

// ShortcutConfig holds the desktop-entry fields that are not derived
// from the install itself.
type ShortcutConfig struct {
	Name       string
	Comment    string
	Categories []string
	WMClass    string
	Terminal   bool
	// Icon is the bundled icon copied next to the executable.
	Icon string
}

// Default returns the built-in configuration for info.
// A nil info, or a platform without released builds, falls back to the
// x86_64 AppImage.
func Default(info *platform.Info) *Config {
	cfg := &Config{
		Owner:      DefaultOwner,
		Repo:       DefaultRepo,
		UserAgent:  DefaultUserAgent,
		APIBaseURL: DefaultAPIBaseURL,
		InstallDir: DefaultInstallDir,
		Asset: AssetConfig{
			Suffix: DefaultSuffix,
			Arch:   DefaultArch,
		},
		Shortcut: ShortcutConfig{
			Name:       "HyPrism",
			Comment:    "Hytale Launcher",
			Categories: []string{"Game"},
			WMClass:    "HyPrism",
			Icon:       defaultIconPath(),
		},
	}

	if info != nil {
		if suffix := info.PackageSuffix(); suffix != "" {
			cfg.Asset.Suffix = suffix
		}
		if arch := info.AssetArch(); arch != "" {
			cfg.Asset.Arch = arch
		}
	}

	return cfg
}

// defaultIconPath looks for the icon next to the running executable.
func defaultIconPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultIconFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultIconFile)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Shortcut.Categories = append([]string(nil), c.Shortcut.Categories...)
	return &out
}

// repoNamePattern matches GitHub owner and repository names.
var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if !repoNamePattern.MatchString(c.Owner) {
		return &ValidationError{Field: "owner", Message: fmt.Sprintf("invalid owner %q", c.Owner)}
	}
	if !repoNamePattern.MatchString(c.Repo) || c.Repo == "." || c.Repo == ".." {
		return &ValidationError{Field: "repo", Message: fmt.Sprintf("invalid repo %q", c.Repo)}
	}

	if err := validateAPIURL(c.APIBaseURL); err != nil {
		return &ValidationError{Field: "api_url", Message: err.Error()}
	}

	if strings.TrimSpace(c.InstallDir) == "" {
		return &ValidationError{Field: "install_dir", Message: "install directory cannot be empty"}
	}

	if c.Asset.Suffix == "" {
		return &ValidationError{Field: "asset.suffix", Message: "suffix cannot be empty"}
	}
	if c.Asset.Arch == "" {
		return &ValidationError{Field: "asset.arch", Message: "arch cannot be empty"}
	}

	name := c.Shortcut.Name
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &ValidationError{Field: "shortcut.name", Message: fmt.Sprintf("invalid shortcut name %q", name)}
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return &ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateAPIURL accepts absolute http(s) URLs.
func validateAPIURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("API URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("API URL must use https:// or http:// scheme (got: %s)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL has no host: %s", raw)
	}

	return nil
}
