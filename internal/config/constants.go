package config

// Lua schema field names and globals
const (
	luaGlobalInstaller = "installer"
	luaFieldOwner      = "owner"
	luaFieldRepo       = "repo"
	luaFieldUserAgent  = "user_agent"
	luaFieldAPIURL     = "api_url"
	luaFieldInstallDir = "install_dir"
	luaFieldLogLevel   = "log_level"
	luaFieldAsset      = "asset"
	luaFieldSuffix     = "suffix"
	luaFieldArch       = "arch"
	luaFieldShortcut   = "shortcut"
	luaFieldName       = "name"
	luaFieldComment    = "comment"
	luaFieldCategories = "categories"
	luaFieldWMClass    = "wm_class"
	luaFieldTerminal   = "terminal"
	luaFieldIcon       = "icon"
)

// Environment variables
const (
	EnvConfigPath = "HYPRISM_INSTALL_CONFIG"
	EnvAPIURL     = "HYPRISM_INSTALL_API_URL"
	EnvLogLevel   = "HYPRISM_INSTALL_LOG_LEVEL"
	EnvToken      = "HYPRISM_INSTALL_GITHUB_TOKEN"
	// EnvGitHubToken is consulted when EnvToken is unset.
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Defaults
const (
	DefaultOwner      = "yyyumeniku"
	DefaultRepo       = "HyPrism"
	DefaultUserAgent  = "HyPrism-installer"
	DefaultAPIBaseURL = "https://api.github.com"
	DefaultInstallDir = "~/Applications/HyPrism"
	DefaultSuffix     = ".AppImage"
	DefaultArch       = "x86_64"
	DefaultIconFile   = "HyPrism_icon.png"

	// MaxConfigSize caps the Lua file read from disk.
	MaxConfigSize = 1 << 20
)
