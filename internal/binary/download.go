package binary

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
)

const (
	// DefaultChunkSize is the size of each buffered write to disk
	DefaultChunkSize = 8192
	// DefaultFileMode is applied to the downloaded file (rwxr-xr-x)
	DefaultFileMode fs.FileMode = 0o755
	// maxRedirects caps the redirect chain from the asset URL to its storage host
	maxRedirects = 10
)

// Downloader streams release assets to disk.
type Downloader struct {
	client    *http.Client
	userAgent string
	chunkSize int
	mode      fs.FileMode
	log       logging.Logger
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithDownloadClient sets the client used for the asset request.
func WithDownloadClient(c *http.Client) DownloaderOption {
	return func(d *Downloader) {
		if c != nil {
			d.client = c
		}
	}
}

// WithDownloadUserAgent sets the client identifier header.
func WithDownloadUserAgent(ua string) DownloaderOption {
	return func(d *Downloader) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// WithChunkSize sets the write chunk size. Non-positive values are ignored.
func WithChunkSize(n int) DownloaderOption {
	return func(d *Downloader) {
		if n > 0 {
			d.chunkSize = n
		}
	}
}

// WithFileMode sets the permission bits applied after the download.
func WithFileMode(mode fs.FileMode) DownloaderOption {
	return func(d *Downloader) {
		d.mode = mode
	}
}

// WithDownloaderLogger sets the logger.
func WithDownloaderLogger(l logging.Logger) DownloaderOption {
	return func(d *Downloader) {
		d.log = logging.OrNop(l)
	}
}

// NewDownloader creates a new downloader.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		// No overall timeout: a large asset on a slow link may take a while.
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
		chunkSize: DefaultChunkSize,
		mode:      DefaultFileMode,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TargetFor builds the install target for downloadURL inside dir.
// The filename is the last segment of the URL path.
func TargetFor(dir, downloadURL string) (InstallTarget, error) {
	u, err := url.Parse(downloadURL)
	if err != nil {
		return InstallTarget{}, &errdefs.ParseError{
			Message: "invalid download URL",
			Detail:  err.Error(),
		}
	}

	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" || name == ".." {
		return InstallTarget{}, &errdefs.ParseError{
			Message: "invalid download URL",
			Detail:  fmt.Sprintf("no file name in %q", downloadURL),
		}
	}

	return InstallTarget{Directory: dir, Filename: name}, nil
}

// Download streams downloadURL into target and marks the file executable.
// The target directory must already exist.
func (d *Downloader) Download(ctx context.Context, downloadURL string, target InstallTarget) (*DownloadResult, error) {
	start := time.Now()
	destPath := target.Path()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &errdefs.NetworkError{Op: "download asset", URL: downloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errdefs.NetworkError{Op: "download asset", URL: downloadURL, StatusCode: resp.StatusCode}
	}

	d.log.Debug("writing asset", "path", destPath, "content_length", resp.ContentLength)

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, &errdefs.FilesystemError{Op: "create file", Path: destPath, Err: err}
	}

	written, err := d.copyChunks(f, resp.Body, downloadURL, destPath)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.Close(); err != nil {
		return nil, &errdefs.FilesystemError{Op: "close file", Path: destPath, Err: err}
	}

	if err := os.Chmod(destPath, d.mode); err != nil {
		return nil, &errdefs.FilesystemError{Op: "chmod", Path: destPath, Err: err}
	}

	result := &DownloadResult{
		Path:         destPath,
		Bytes:        written,
		DownloadTime: time.Since(start),
	}
	d.log.Info("asset downloaded", "path", destPath, "bytes", written, "duration", result.DownloadTime)
	return result, nil
}

// copyChunks copies src to dst one chunk at a time, skipping empty reads.
func (d *Downloader) copyChunks(dst io.Writer, src io.Reader, downloadURL, destPath string) (int64, error) {
	buf := make([]byte, d.chunkSize)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			wn, err := dst.Write(buf[:n])
			written += int64(wn)
			if err != nil {
				return written, &errdefs.FilesystemError{Op: "write file", Path: destPath, Err: err}
			}
			if wn != n {
				return written, &errdefs.FilesystemError{Op: "write file", Path: destPath, Err: io.ErrShortWrite}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &errdefs.NetworkError{Op: "download asset", URL: downloadURL, Err: readErr}
		}
	}
}
