package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/platform"
)

var arm64Linux = &platform.Info{OS: "linux", Arch: "arm64", ArchRaw: "arm64", Platform: "arch", Family: "arch"}

func TestParser_ParseString(t *testing.T) {
	code := `
installer = {
	owner = "someone",
	repo = "HyPrism-fork",
	install_dir = "~/Games/HyPrism",
	log_level = "debug",
	asset = {
		arch = platform.asset_arch,
	},
	shortcut = {
		comment = "Fork of " .. "HyPrism",
		categories = { "Game", platform.when(platform.is_arm64, "ARM"), "ActionGame" },
		terminal = true,
	},
}
`
	base := Default(arm64Linux)
	cfg, err := NewParser(arm64Linux).ParseString(context.Background(), code, base)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if cfg.Owner != "someone" || cfg.Repo != "HyPrism-fork" {
		t.Errorf("source = %s/%s", cfg.Owner, cfg.Repo)
	}
	if cfg.InstallDir != "~/Games/HyPrism" {
		t.Errorf("InstallDir = %s", cfg.InstallDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.Asset.Arch != "aarch64" || cfg.Asset.Suffix != ".AppImage" {
		t.Errorf("Asset = %+v", cfg.Asset)
	}
	wantCategories := []string{"Game", "ARM", "ActionGame"}
	if !reflect.DeepEqual(cfg.Shortcut.Categories, wantCategories) {
		t.Errorf("Categories = %v, want %v", cfg.Shortcut.Categories, wantCategories)
	}
	if !cfg.Shortcut.Terminal || cfg.Shortcut.Comment != "Fork of HyPrism" {
		t.Errorf("Shortcut = %+v", cfg.Shortcut)
	}

	// Unset fields keep their defaults and the base is untouched.
	if cfg.UserAgent != DefaultUserAgent || cfg.Shortcut.Name != "HyPrism" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if base.Owner != DefaultOwner {
		t.Error("ParseString() modified the base config")
	}
}

func TestParser_ParseString_Errors(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantDetail string
	}{
		{"syntax error", `installer = {`, ""},
		{"missing table", `x = 1`, "expected table, got nil"},
		{"installer not a table", `installer = "HyPrism"`, "expected table, got string"},
		{"owner not a string", `installer = { owner = 42 }`, "installer.owner must be a string, got number"},
		{"asset not a table", `installer = { asset = ".AppImage" }`, "installer.asset must be a table"},
		{"terminal not a bool", `installer = { shortcut = { terminal = "no" } }`, "installer.shortcut.terminal must be a boolean"},
		{"category not a string", `installer = { shortcut = { categories = { "Game", 3 } } }`, "installer.shortcut.categories[2] must be a string"},
		{"invalid value", `installer = { repo = "" }`, "config validation failed for repo"},
		{"sandbox escape", `installer = { owner = os.getenv("USER") }`, "attempt to index"},
		{"platform read-only", `platform.arch = "amd64"; installer = {}`, "read-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(arm64Linux).ParseString(context.Background(), tt.code, Default(arm64Linux))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if tt.wantDetail != "" && !strings.Contains(parseErr.Detail, tt.wantDetail) {
				t.Errorf("Detail = %q, want substring %q", parseErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestParser_ParseString_NoPlatform(t *testing.T) {
	cfg, err := NewParser(nil).ParseString(context.Background(), `installer = {}`, Default(nil))
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if cfg.Asset.Arch != DefaultArch {
		t.Errorf("Arch = %s", cfg.Asset.Arch)
	}

	_, err = NewParser(nil).ParseString(context.Background(), `installer = { owner = platform.os }`, Default(nil))
	if err == nil {
		t.Error("platform should be undefined without detection info")
	}
}

func TestParser_ParseString_NilBase(t *testing.T) {
	if _, err := NewParser(nil).ParseString(context.Background(), `installer = {}`, nil); err == nil {
		t.Error("expected error for nil base")
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte(`installer = { repo = "Other" }`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewParser(nil).ParseFile(context.Background(), path, Default(nil))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if cfg.Repo != "Other" {
		t.Errorf("Repo = %s", cfg.Repo)
	}

	big := filepath.Join(dir, "big.lua")
	if err := os.WriteFile(big, []byte("installer = {}\n--"+strings.Repeat("x", MaxConfigSize)), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = NewParser(nil).ParseFile(context.Background(), big, Default(nil))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError for oversized file, got %v", err)
	}

	if _, err := NewParser(nil).ParseFile(context.Background(), filepath.Join(dir, "missing.lua"), Default(nil)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatError(t *testing.T) {
	err := &ParseError{Message: "Lua syntax error", Detail: "line 1: unexpected EOF\nstack traceback:\n\t[G]: ?"}

	if got := FormatError(err, false); got != "Lua syntax error: line 1: unexpected EOF" {
		t.Errorf("FormatError(false) = %q", got)
	}
	if got := FormatError(err, true); !strings.Contains(got, "stack traceback") {
		t.Errorf("FormatError(true) should keep details: %q", got)
	}
	if got := FormatError(errors.New("plain"), false); got != "plain" {
		t.Errorf("FormatError(plain) = %q", got)
	}
}
