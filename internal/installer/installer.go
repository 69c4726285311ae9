// Package installer runs the install flow: resolve the latest release asset,
// download it into the install directory, then offer to register desktop
// shortcuts for it.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/binary"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/config"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/prompt"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/shortcut"
)

// InstallDirPermissions is the mode used when creating the install directory.
const InstallDirPermissions = 0o755

// ShortcutQuestion is asked after a successful download.
const ShortcutQuestion = "Do you want me to create a shortcut?"

// ReleaseResolver finds the asset to install.
type ReleaseResolver interface {
	Resolve(ctx context.Context, owner, repo string, filter binary.AssetFilter) (binary.ReleaseAsset, error)
}

// Fetcher downloads an asset to its install target.
type Fetcher interface {
	Download(ctx context.Context, downloadURL string, target binary.InstallTarget) (*binary.DownloadResult, error)
}

// ShortcutWriter registers the installed executable with the desktop.
type ShortcutWriter interface {
	Install(exePath, installDir string) (*shortcut.Result, error)
}

// ShortcutState tracks the confirmation step. It only moves forward from
// AwaitingConfirmation to one of the two final states.
type ShortcutState int

const (
	AwaitingConfirmation ShortcutState = iota
	ShortcutsWritten
	Skipped
)

func (s ShortcutState) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting-confirmation"
	case ShortcutsWritten:
		return "shortcuts-written"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("ShortcutState(%d)", int(s))
	}
}

// Result summarizes a completed run.
type Result struct {
	InstallDir string
	Asset      binary.ReleaseAsset
	Binary     *binary.DownloadResult
	Shortcut   ShortcutState
	Shortcuts  *shortcut.Result // nil unless Shortcut is ShortcutsWritten
}

// Option configures an Installer.
type Option func(*Installer)

// WithResolver replaces the release resolver built from the config.
func WithResolver(r ReleaseResolver) Option {
	return func(i *Installer) { i.resolver = r }
}

// WithFetcher replaces the downloader built from the config.
func WithFetcher(f Fetcher) Option {
	return func(i *Installer) { i.fetcher = f }
}

// WithShortcutWriter replaces the shortcut installer built from the config.
func WithShortcutWriter(w ShortcutWriter) Option {
	return func(i *Installer) { i.shortcuts = w }
}

// WithConfirm sets the confirmation callback. The default asks on the terminal.
func WithConfirm(c prompt.ConfirmFunc) Option {
	return func(i *Installer) { i.confirm = c }
}

// WithOutput sets where progress messages are written. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Installer) { i.out = w }
}

// WithLogger sets the logger passed to every default component.
func WithLogger(l logging.Logger) Option {
	return func(i *Installer) { i.log = l }
}

// Installer wires the release resolver, downloader and shortcut installer
// together for one configuration.
type Installer struct {
	cfg       *config.Config
	resolver  ReleaseResolver
	fetcher   Fetcher
	shortcuts ShortcutWriter
	confirm   prompt.ConfirmFunc
	out       io.Writer
	log       logging.Logger
}

// New creates an Installer for cfg. Components not supplied through opts
// are built from cfg.
func New(cfg *config.Config, opts ...Option) *Installer {
	i := &Installer{cfg: cfg}
	for _, opt := range opts {
		opt(i)
	}

	i.log = logging.OrNop(i.log)
	if i.out == nil {
		i.out = os.Stdout
	}
	if i.confirm == nil {
		i.confirm = prompt.NewTerminalConfirmer()
	}
	if i.resolver == nil {
		i.resolver = binary.NewResolver(
			binary.WithBaseURL(cfg.APIBaseURL),
			binary.WithUserAgent(cfg.UserAgent),
			binary.WithToken(cfg.GitHubToken),
			binary.WithResolverLogger(i.log),
		)
	}
	if i.fetcher == nil {
		i.fetcher = binary.NewDownloader(
			binary.WithDownloadUserAgent(cfg.UserAgent),
			binary.WithDownloaderLogger(i.log),
		)
	}

	return i
}

// Run performs the install. Every failure ends the run; a decline at the
// shortcut prompt is not a failure.
func (i *Installer) Run(ctx context.Context) (*Result, error) {
	if err := i.cfg.Validate(); err != nil {
		return nil, err
	}
	name := i.cfg.Shortcut.Name

	dir, err := config.ExpandPath(i.cfg.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("resolve install directory: %w", err)
	}
	if err := os.MkdirAll(dir, InstallDirPermissions); err != nil {
		return nil, &errdefs.FilesystemError{Op: "create install directory", Path: dir, Err: err}
	}
	i.log.Debug("install directory ready", "path", dir)

	filter := binary.AssetFilter{Suffix: i.cfg.Asset.Suffix, Arch: i.cfg.Asset.Arch}
	asset, err := i.resolver.Resolve(ctx, i.cfg.Owner, i.cfg.Repo, filter)
	if err != nil {
		return nil, err
	}

	target, err := binary.TargetFor(dir, asset.DownloadURL)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(i.out, "Downloading %s to: %s\n", name, target.Path())
	downloaded, err := i.fetcher.Download(ctx, asset.DownloadURL, target)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(i.out, "%s installed successfully!\n", name)

	result := &Result{
		InstallDir: dir,
		Asset:      asset,
		Binary:     downloaded,
		Shortcut:   AwaitingConfirmation,
	}

	ok, err := i.confirm(ShortcutQuestion)
	if err != nil {
		return nil, fmt.Errorf("shortcut confirmation: %w", err)
	}
	if !ok {
		result.Shortcut = Skipped
		fmt.Fprintln(i.out, "Ok, goodbye")
		return result, nil
	}

	writer, err := i.shortcutWriter()
	if err != nil {
		return nil, err
	}
	written, err := writer.Install(downloaded.Path, dir)
	if err != nil {
		return nil, err
	}

	result.Shortcut = ShortcutsWritten
	result.Shortcuts = written
	fmt.Fprintf(i.out, "Shortcut created on desktop: %s\n", written.DesktopPath)
	fmt.Fprintf(i.out, "Shortcut added to menu: %s\n", written.MenuPath)

	return result, nil
}

// shortcutWriter returns the injected writer, or builds one from the config.
// Building is deferred so a declined prompt never looks up the home directory.
func (i *Installer) shortcutWriter() (ShortcutWriter, error) {
	if i.shortcuts != nil {
		return i.shortcuts, nil
	}

	opts, err := ShortcutOptions(i.cfg, i.log)
	if err != nil {
		return nil, err
	}
	return shortcut.NewInstaller(opts), nil
}

// ShortcutOptions maps the shortcut section of cfg onto shortcut.Options
// using the current user's desktop and menu locations.
func ShortcutOptions(cfg *config.Config, log logging.Logger) (shortcut.Options, error) {
	paths, err := shortcut.DefaultPaths(cfg.Shortcut.Name)
	if err != nil {
		return shortcut.Options{}, err
	}

	entry := shortcut.DefaultEntry()
	entry.Name = cfg.Shortcut.Name
	entry.Comment = cfg.Shortcut.Comment
	entry.Terminal = cfg.Shortcut.Terminal
	entry.Categories = append([]string(nil), cfg.Shortcut.Categories...)
	entry.StartupWMClass = cfg.Shortcut.WMClass

	return shortcut.Options{
		Paths:      paths,
		IconSource: cfg.Shortcut.Icon,
		Entry:      entry,
		Logger:     log,
	}, nil
}
