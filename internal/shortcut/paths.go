package shortcut

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Paths are the two locations the desktop entry is written to.
type Paths struct {
	Desktop string
	Menu    string
}

// DefaultPaths returns the desktop and application-menu entry paths for
// appName under the current user's home directory.
func DefaultPaths(appName string) (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf("get home directory: %w", err)
	}
	return PathsFor(home, appName), nil
}

// PathsFor computes the entry paths under home. XDG_DESKTOP_DIR and
// XDG_DATA_HOME override the conventional ~/Desktop and ~/.local/share.
func PathsFor(home, appName string) Paths {
	filename := appName + ".desktop"

	desktopDir := os.Getenv("XDG_DESKTOP_DIR")
	if desktopDir == "" || !filepath.IsAbs(desktopDir) {
		desktopDir = filepath.Join(home, "Desktop")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" || !filepath.IsAbs(dataHome) {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return Paths{
		Desktop: filepath.Join(desktopDir, filename),
		Menu:    filepath.Join(dataHome, "applications", filename),
	}
}
