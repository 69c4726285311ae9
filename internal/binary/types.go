package binary

import (
	"path/filepath"
	"strings"
	"time"
)

// Release is the typed view of a "latest release" payload.
type Release struct {
	TagName string
	Name    string
	Assets  []ReleaseAsset
}

// ReleaseAsset is a single downloadable file attached to a release.
type ReleaseAsset struct {
	Name        string
	DownloadURL string
}

// AssetFilter selects the asset built for this platform.
type AssetFilter struct {
	Suffix string // ".AppImage"
	Arch   string // "x86_64"
}

// Matches reports whether name ends with the suffix and contains the arch token.
func (f AssetFilter) Matches(name string) bool {
	return strings.HasSuffix(name, f.Suffix) && strings.Contains(name, f.Arch)
}

// InstallTarget is where a downloaded asset lands on disk.
type InstallTarget struct {
	Directory string
	Filename  string
}

// Path returns the full destination path.
func (t InstallTarget) Path() string {
	return filepath.Join(t.Directory, t.Filename)
}

// DownloadResult contains information about a completed download
type DownloadResult struct {
	Path         string
	Bytes        int64
	DownloadTime time.Duration
}
