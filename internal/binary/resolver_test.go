package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/errdefs"
)

const releaseJSON = `{
	"tag_name": "v2.1.0",
	"name": "HyPrism 2.1.0",
	"assets": [
		{"name": "HyPrism-2.1.0-aarch64.AppImage", "browser_download_url": "https://dl.example/HyPrism-2.1.0-aarch64.AppImage"},
		{"name": "HyPrism-2.1.0-x86_64.AppImage.zsync", "browser_download_url": "https://dl.example/HyPrism-2.1.0-x86_64.AppImage.zsync"},
		{"name": "app-x86_64.AppImage", "browser_download_url": "https://dl.example/app-x86_64.AppImage"},
		{"name": "HyPrism-2.1.0-x86_64.AppImage", "browser_download_url": "https://dl.example/HyPrism-2.1.0-x86_64.AppImage"},
		{"name": "HyPrism-2.1.0-x86_64.exe", "browser_download_url": "https://dl.example/HyPrism-2.1.0-x86_64.exe"}
	]
}`

var linuxAMD64 = AssetFilter{Suffix: ".AppImage", Arch: "x86_64"}

// newReleaseServer serves body with status on the latest release endpoint
// and records the headers of the last request.
func newReleaseServer(t *testing.T, status int, body string, gotHeader *http.Header) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/yyyumeniku/HyPrism/releases/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if gotHeader != nil {
			*gotHeader = r.Header.Clone()
		}
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolver_Resolve_FirstMatch(t *testing.T) {
	var header http.Header
	server := newReleaseServer(t, http.StatusOK, releaseJSON, &header)

	resolver := NewResolver(WithBaseURL(server.URL), WithUserAgent("test-agent"))
	asset, err := resolver.Resolve(context.Background(), "yyyumeniku", "HyPrism", linuxAMD64)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if asset.Name != "app-x86_64.AppImage" {
		t.Errorf("Name = %q, want app-x86_64.AppImage", asset.Name)
	}
	if asset.DownloadURL != "https://dl.example/app-x86_64.AppImage" {
		t.Errorf("DownloadURL = %q", asset.DownloadURL)
	}
	if got := header.Get("User-Agent"); got != "test-agent" {
		t.Errorf("User-Agent = %q, want test-agent", got)
	}
}

func TestResolver_Token(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantAuth string
	}{
		{"anonymous", "", ""},
		{"token", "ghp_test", "Bearer ghp_test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var header http.Header
			server := newReleaseServer(t, http.StatusOK, releaseJSON, &header)

			resolver := NewResolver(WithBaseURL(server.URL), WithToken(tt.token))
			if _, err := resolver.LatestRelease(context.Background(), "yyyumeniku", "HyPrism"); err != nil {
				t.Fatalf("LatestRelease() error = %v", err)
			}
			if got := header.Get("Authorization"); got != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", got, tt.wantAuth)
			}
			if got := header.Get("User-Agent"); got != DefaultUserAgent {
				t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
			}
		})
	}
}

func TestResolver_Resolve_NoMatch(t *testing.T) {
	body := `{"tag_name": "v1", "assets": [
		{"name": "HyPrism-setup.exe", "browser_download_url": "https://dl.example/HyPrism-setup.exe"},
		{"name": "HyPrism-aarch64.AppImage", "browser_download_url": "https://dl.example/HyPrism-aarch64.AppImage"}
	]}`
	server := newReleaseServer(t, http.StatusOK, body, nil)

	resolver := NewResolver(WithBaseURL(server.URL))
	_, err := resolver.Resolve(context.Background(), "yyyumeniku", "HyPrism", linuxAMD64)

	var notFound *errdefs.AssetNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected AssetNotFoundError, got %v", err)
	}
	if notFound.Owner != "yyyumeniku" || notFound.Repo != "HyPrism" || notFound.Tag != "v1" {
		t.Errorf("unexpected error fields: %+v", notFound)
	}
}

func TestResolver_LatestRelease_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantNetwork bool
		wantParse   bool
	}{
		{"404 not found", http.StatusNotFound, `{"message": "Not Found"}`, true, false},
		{"403 rate limited", http.StatusForbidden, `{"message": "API rate limit exceeded"}`, true, false},
		{"500 server error", http.StatusInternalServerError, "", true, false},
		{"malformed json", http.StatusOK, `{"assets": [`, false, true},
		{"missing assets", http.StatusOK, `{"tag_name": "v1"}`, false, true},
		{"null assets", http.StatusOK, `{"assets": null}`, false, true},
		{"asset without name", http.StatusOK, `{"assets": [{"browser_download_url": "https://x/a"}]}`, false, true},
		{"asset without url", http.StatusOK, `{"assets": [{"name": "a-x86_64.AppImage"}]}`, false, true},
		{"asset with empty url", http.StatusOK, `{"assets": [{"name": "a", "browser_download_url": ""}]}`, false, true},
		{"null asset", http.StatusOK, `{"assets": [null]}`, false, true},
		{"assets not a list", http.StatusOK, `{"assets": "none"}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newReleaseServer(t, tt.status, tt.body, nil)
			resolver := NewResolver(WithBaseURL(server.URL))

			_, err := resolver.LatestRelease(context.Background(), "yyyumeniku", "HyPrism")
			if err == nil {
				t.Fatal("expected error but got none")
			}

			var netErr *errdefs.NetworkError
			if got := errors.As(err, &netErr); got != tt.wantNetwork {
				t.Errorf("NetworkError = %v, want %v (err: %v)", got, tt.wantNetwork, err)
			}
			if tt.wantNetwork && netErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", netErr.StatusCode, tt.status)
			}

			var parseErr *errdefs.ParseError
			if got := errors.As(err, &parseErr); got != tt.wantParse {
				t.Errorf("ParseError = %v, want %v (err: %v)", got, tt.wantParse, err)
			}
		})
	}
}

func TestResolver_LatestRelease_ReleaseFields(t *testing.T) {
	server := newReleaseServer(t, http.StatusOK, releaseJSON, nil)

	release, err := NewResolver(WithBaseURL(server.URL)).LatestRelease(context.Background(), "yyyumeniku", "HyPrism")
	if err != nil {
		t.Fatalf("LatestRelease() error = %v", err)
	}
	if release.TagName != "v2.1.0" || release.Name != "HyPrism 2.1.0" {
		t.Errorf("release = %s %q", release.TagName, release.Name)
	}
	if len(release.Assets) != 5 {
		t.Fatalf("len(Assets) = %d, want 5", len(release.Assets))
	}
	if release.Assets[0].Name != "HyPrism-2.1.0-aarch64.AppImage" {
		t.Errorf("Assets[0] = %+v, want API order preserved", release.Assets[0])
	}
}

func TestResolver_LatestRelease_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	resolver := NewResolver(WithBaseURL(url))
	_, err := resolver.LatestRelease(context.Background(), "yyyumeniku", "HyPrism")

	var netErr *errdefs.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.Err == nil {
		t.Error("transport failure should carry the underlying error")
	}
}

func TestResolver_EmptyAssetsIsNotFound(t *testing.T) {
	server := newReleaseServer(t, http.StatusOK, `{"tag_name": "v1", "assets": []}`, nil)

	_, err := NewResolver(WithBaseURL(server.URL)).Resolve(context.Background(), "yyyumeniku", "HyPrism", linuxAMD64)

	var notFound *errdefs.AssetNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected AssetNotFoundError, got %v", err)
	}
}

func TestAssetFilter_Matches(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		want  bool
	}{
		{"exact", "app-x86_64.AppImage", true},
		{"versioned", "HyPrism-1.0-x86_64.AppImage", true},
		{"wrong arch", "app-aarch64.AppImage", false},
		{"wrong suffix", "app-x86_64.tar.gz", false},
		{"suffix not at end", "app-x86_64.AppImage.zsync", false},
		{"case sensitive suffix", "app-x86_64.appimage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := linuxAMD64.Matches(tt.asset); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.asset, got, tt.want)
			}
		})
	}
}

func TestSelectAsset_NilRelease(t *testing.T) {
	if _, err := SelectAsset(nil, linuxAMD64); err == nil {
		t.Error("expected error for nil release")
	}
}

func TestResolver_LatestReleaseURL(t *testing.T) {
	r := NewResolver(WithBaseURL("https://ghe.example/api/v3/"))
	want := "https://ghe.example/api/v3/repos/o/r/releases/latest"
	if got := r.LatestReleaseURL("o", "r"); got != want {
		t.Errorf("LatestReleaseURL() = %q, want %q", got, want)
	}

	if got := NewResolver().LatestReleaseURL("o", "r"); got != "https://api.github.com/repos/o/r/releases/latest" {
		t.Errorf("default LatestReleaseURL() = %q", got)
	}
}
