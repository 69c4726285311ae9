package shortcut

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
)

// EntryFileMode marks the entry files executable, which some desktops
// require before they will launch a desktop-surface entry.
const EntryFileMode fs.FileMode = 0o755

// Options configures an Installer.
type Options struct {
	Paths      Paths
	IconSource string // bundled icon; may not exist
	Entry      Entry  // Exec and Icon are filled in by Install
	Logger     logging.Logger
}

// Installer writes desktop entries for an installed executable.
type Installer struct {
	paths      Paths
	iconSource string
	entry      Entry
	log        logging.Logger
}

// Result describes what Install wrote.
type Result struct {
	DesktopPath string
	MenuPath    string
	IconPath    string
	IconCopied  bool
	Content     []byte
}

// NewInstaller creates a shortcut installer.
func NewInstaller(opts Options) *Installer {
	return &Installer{
		paths:      opts.Paths,
		iconSource: opts.IconSource,
		entry:      opts.Entry,
		log:        logging.OrNop(opts.Logger),
	}
}

// IconDestination returns where the icon is copied to in installDir,
// or "" when no icon source is configured.
func (i *Installer) IconDestination(installDir string) string {
	if i.iconSource == "" {
		return ""
	}
	return filepath.Join(installDir, filepath.Base(i.iconSource))
}

// CopyIcon copies the icon source into installDir. It does nothing when the
// source does not exist or the destination is already present.
func (i *Installer) CopyIcon(installDir string) (string, bool, error) {
	dst := i.IconDestination(installDir)
	if dst == "" {
		return "", false, nil
	}

	if _, err := os.Stat(i.iconSource); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.log.Warn("icon source not found, skipping copy", "path", i.iconSource)
			return dst, false, nil
		}
		return "", false, &errdefs.FilesystemError{Op: "stat icon", Path: i.iconSource, Err: err}
	}

	if _, err := os.Stat(dst); err == nil {
		i.log.Debug("icon already installed", "path", dst)
		return dst, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, &errdefs.FilesystemError{Op: "stat icon", Path: dst, Err: err}
	}

	if err := copyFile(i.iconSource, dst); err != nil {
		return "", false, err
	}

	i.log.Debug("icon copied", "from", i.iconSource, "to", dst)
	return dst, true, nil
}

// Install copies the icon, renders the entry for exePath and writes the
// same bytes to the desktop and menu paths.
func (i *Installer) Install(exePath, installDir string) (*Result, error) {
	iconPath, copied, err := i.CopyIcon(installDir)
	if err != nil {
		return nil, err
	}

	entry := i.entry
	entry.Exec = exePath
	entry.Icon = iconPath

	content, err := Render(entry)
	if err != nil {
		return nil, err
	}

	for _, path := range []string{i.paths.Desktop, i.paths.Menu} {
		if err := writeEntry(path, content); err != nil {
			return nil, err
		}
		i.log.Info("desktop entry written", "path", path)
	}

	return &Result{
		DesktopPath: i.paths.Desktop,
		MenuPath:    i.paths.Menu,
		IconPath:    iconPath,
		IconCopied:  copied,
		Content:     content,
	}, nil
}

// writeEntry writes content to path, creating parent directories, and
// sets EntryFileMode regardless of the umask.
func writeEntry(path string, content []byte) error {
	if path == "" {
		return fmt.Errorf("desktop entry path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &errdefs.FilesystemError{Op: "create directory", Path: filepath.Dir(path), Err: err}
	}

	if err := os.WriteFile(path, content, EntryFileMode); err != nil {
		return &errdefs.FilesystemError{Op: "write desktop entry", Path: path, Err: err}
	}

	if err := os.Chmod(path, EntryFileMode); err != nil {
		return &errdefs.FilesystemError{Op: "chmod", Path: path, Err: err}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &errdefs.FilesystemError{Op: "open icon", Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return &errdefs.FilesystemError{Op: "create icon", Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &errdefs.FilesystemError{Op: "copy icon", Path: dst, Err: err}
	}

	if err := out.Close(); err != nil {
		return &errdefs.FilesystemError{Op: "close icon", Path: dst, Err: err}
	}
	return nil
}
