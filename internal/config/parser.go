package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser evaluates Lua config files on top of a base configuration.
type Parser struct {
	info *platform.Info
}

// NewParser creates a parser that exposes info as the "platform" table.
// A nil info skips the injection.
func NewParser(info *platform.Info) *Parser {
	return &Parser{info: info}
}

// ParseFile reads the Lua file at path and applies it to a copy of base.
func (p *Parser) ParseFile(ctx context.Context, path string, base *Config) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s exceeds %d bytes", path, MaxConfigSize),
		}
	}

	return p.ParseString(ctx, string(data), base)
}

// ParseString evaluates luaCode and applies the "installer" table to a copy of base.
func (p *Parser) ParseString(ctx context.Context, luaCode string, base *Config) (*Config, error) {
	if base == nil {
		return nil, fmt.Errorf("base config is nil")
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.info != nil {
		if err := platform.InjectPlatformTable(L, p.info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("parse config: %w", ctx.Err())
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L, base.Clone())
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig applies the global "installer" table onto cfg.
func extractConfig(L *lua.LState, cfg *Config) (*Config, error) {
	value := L.GetGlobal(luaGlobalInstaller)
	if value.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'installer' table",
			Detail:  fmt.Sprintf("expected table, got %s", value.Type()),
		}
	}
	table := value.(*lua.LTable)

	strFields := []struct {
		key string
		dst *string
	}{
		{luaFieldOwner, &cfg.Owner},
		{luaFieldRepo, &cfg.Repo},
		{luaFieldUserAgent, &cfg.UserAgent},
		{luaFieldAPIURL, &cfg.APIBaseURL},
		{luaFieldInstallDir, &cfg.InstallDir},
		{luaFieldLogLevel, &cfg.LogLevel},
	}
	for _, f := range strFields {
		if err := getString(table, luaGlobalInstaller, f.key, f.dst); err != nil {
			return nil, err
		}
	}

	if asset, err := getTable(table, luaGlobalInstaller, luaFieldAsset); err != nil {
		return nil, err
	} else if asset != nil {
		prefix := luaGlobalInstaller + "." + luaFieldAsset
		if err := getString(asset, prefix, luaFieldSuffix, &cfg.Asset.Suffix); err != nil {
			return nil, err
		}
		if err := getString(asset, prefix, luaFieldArch, &cfg.Asset.Arch); err != nil {
			return nil, err
		}
	}

	if shortcut, err := getTable(table, luaGlobalInstaller, luaFieldShortcut); err != nil {
		return nil, err
	} else if shortcut != nil {
		if err := extractShortcut(shortcut, &cfg.Shortcut); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

func extractShortcut(table *lua.LTable, sc *ShortcutConfig) error {
	prefix := luaGlobalInstaller + "." + luaFieldShortcut

	for _, f := range []struct {
		key string
		dst *string
	}{
		{luaFieldName, &sc.Name},
		{luaFieldComment, &sc.Comment},
		{luaFieldWMClass, &sc.WMClass},
		{luaFieldIcon, &sc.Icon},
	} {
		if err := getString(table, prefix, f.key, f.dst); err != nil {
			return err
		}
	}

	switch v := table.RawGetString(luaFieldTerminal); v.Type() {
	case lua.LTNil:
	case lua.LTBool:
		sc.Terminal = bool(v.(lua.LBool))
	default:
		return typeError(prefix, luaFieldTerminal, "boolean", v)
	}

	switch v := table.RawGetString(luaFieldCategories); v.Type() {
	case lua.LTNil:
	case lua.LTTable:
		categories, err := extractStringList(v.(*lua.LTable), prefix+"."+luaFieldCategories)
		if err != nil {
			return err
		}
		sc.Categories = categories
	default:
		return typeError(prefix, luaFieldCategories, "table", v)
	}

	return nil
}

// extractStringList reads the array part of table. Nil holes from platform
// conditionals are skipped.
func extractStringList(table *lua.LTable, field string) ([]string, error) {
	var out []string
	for i := 1; i <= table.Len(); i++ {
		v := table.RawGetInt(i)
		switch v.Type() {
		case lua.LTNil:
			continue
		case lua.LTString:
			out = append(out, strings.TrimSpace(v.String()))
		default:
			return nil, &ParseError{
				Message: "invalid config value",
				Detail:  fmt.Sprintf("%s[%d] must be a string, got %s", field, i, v.Type()),
			}
		}
	}
	return out, nil
}

// getString copies table[key] into dst when it is set.
func getString(table *lua.LTable, prefix, key string, dst *string) error {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTString:
		*dst = v.String()
		return nil
	default:
		return typeError(prefix, key, "string", v)
	}
}

// getTable returns table[key], or nil when it is not set.
func getTable(table *lua.LTable, prefix, key string) (*lua.LTable, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTTable:
		return v.(*lua.LTable), nil
	default:
		return nil, typeError(prefix, key, "table", v)
	}
}

func typeError(prefix, key, want string, got lua.LValue) error {
	return &ParseError{
		Message: "invalid config value",
		Detail:  fmt.Sprintf("%s.%s must be a %s, got %s", prefix, key, want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
