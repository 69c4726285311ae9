package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/config"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/installer"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/platform"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/prompt"
)

// runInstall installs into args[0], or the configured directory when no
// argument is given. A nil confirm asks on the terminal.
func runInstall(ctx context.Context, args []string, out io.Writer, confirm prompt.ConfirmFunc) error {
	info, err := detectPlatform(ctx)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, info, nil)
	if err != nil {
		return err
	}
	if len(args) > 0 && args[0] != "" {
		cfg.InstallDir = args[0]
	}

	log, sync, err := logging.NewZap(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = sync() }()

	log.Debug("starting install",
		"version", Version,
		"platform", info.Platform,
		"arch", info.Arch,
		"source", cfg.Owner+"/"+cfg.Repo,
		"install_dir", cfg.InstallDir,
	)
	if len(args) > 1 {
		log.Debug("ignoring extra arguments", "args", args[1:])
	}

	opts := []installer.Option{
		installer.WithLogger(log),
		installer.WithOutput(out),
	}
	if confirm != nil {
		opts = append(opts, installer.WithConfirm(confirm))
	}

	result, err := installer.New(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	log.Info("install finished",
		"path", result.Binary.Path,
		"bytes", result.Binary.Bytes,
		"duration", result.Binary.DownloadTime,
		"shortcut", result.Shortcut.String(),
	)
	return nil
}

// detectPlatform wraps platform detection with context support
func detectPlatform(ctx context.Context) (*platform.Info, error) {
	detector := platform.NewDetector()
	platformInfo, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	return platformInfo, nil
}
