package binary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/hyprism-install/internal/logging"
	"github.com/google/go-github/v36/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIBaseURL is the release API root
	DefaultAPIBaseURL = "https://api.github.com"
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "HyPrism-installer"
	// DefaultAPITimeout bounds the release metadata request
	DefaultAPITimeout = 30 * time.Second
)

// Resolver looks up release metadata and picks the asset to install.
type Resolver struct {
	client    *http.Client
	baseURL   string
	userAgent string
	token     string
	log       logging.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets the client used for the metadata request.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithBaseURL points the resolver at a different API root.
func WithBaseURL(u string) ResolverOption {
	return func(r *Resolver) {
		if u != "" {
			r.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the client identifier header.
func WithUserAgent(ua string) ResolverOption {
	return func(r *Resolver) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithToken authenticates API requests with a personal access token,
// which raises the rate limit. The token is never sent to download hosts.
func WithToken(token string) ResolverOption {
	return func(r *Resolver) {
		r.token = token
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(l logging.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = logging.OrNop(l)
	}
}

// NewResolver creates a resolver against DefaultAPIBaseURL.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:    &http.Client{Timeout: DefaultAPITimeout},
		baseURL:   DefaultAPIBaseURL,
		userAgent: DefaultUserAgent,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LatestReleaseURL returns the endpoint queried for owner/repo.
func (r *Resolver) LatestReleaseURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.baseURL, owner, repo)
}

// githubClient builds the API client for the configured base URL.
func (r *Resolver) githubClient() (*github.Client, error) {
	base, err := url.Parse(r.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}

	httpClient := r.client
	if r.token != "" {
		authed := *r.client
		authed.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: r.token}),
			Base:   r.client.Transport,
		}
		httpClient = &authed
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = base
	gh.UserAgent = r.userAgent
	return gh, nil
}

// LatestRelease fetches and decodes the latest release of owner/repo.
func (r *Resolver) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	endpoint := r.LatestReleaseURL(owner, repo)
	r.log.Debug("fetching latest release", "url", endpoint, "authenticated", r.token != "")

	gh, err := r.githubClient()
	if err != nil {
		return nil, err
	}

	latest, resp, err := gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, classifyAPIError(endpoint, resp, err)
	}

	release, err := convertRelease(latest)
	if err != nil {
		return nil, err
	}

	r.log.Debug("latest release fetched", "tag", release.TagName, "assets", len(release.Assets))
	return release, nil
}

// classifyAPIError maps a go-github failure onto the error taxonomy:
// no response is a transport failure, a non-2xx response is a status
// failure, and a 2xx response that still failed could not be decoded.
func classifyAPIError(endpoint string, resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return &errdefs.NetworkError{Op: "fetch release", URL: endpoint, Err: err}
	}

	if status := resp.StatusCode; status < 200 || status > 299 {
		return &errdefs.NetworkError{Op: "fetch release", URL: endpoint, StatusCode: status}
	}

	return &errdefs.ParseError{
		Message: "invalid release JSON",
		Detail:  err.Error(),
	}
}

// convertRelease copies the API release into a Release, rejecting missing
// fields. A nil assets slice means the field was absent or null.
func convertRelease(latest *github.RepositoryRelease) (*Release, error) {
	if latest == nil {
		return nil, &errdefs.ParseError{
			Message: "invalid release JSON",
			Detail:  "empty response body",
		}
	}

	if latest.Assets == nil {
		return nil, &errdefs.ParseError{
			Message: "invalid release JSON",
			Detail:  "missing \"assets\" field",
		}
	}

	release := &Release{
		TagName: latest.GetTagName(),
		Name:    latest.GetName(),
		Assets:  make([]ReleaseAsset, 0, len(latest.Assets)),
	}

	for i, a := range latest.Assets {
		if a.GetName() == "" {
			return nil, &errdefs.ParseError{
				Message: "invalid release JSON",
				Detail:  fmt.Sprintf("asset %d: missing \"name\"", i),
			}
		}
		if a.GetBrowserDownloadURL() == "" {
			return nil, &errdefs.ParseError{
				Message: "invalid release JSON",
				Detail:  fmt.Sprintf("asset %q: missing \"browser_download_url\"", a.GetName()),
			}
		}
		release.Assets = append(release.Assets, ReleaseAsset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
		})
	}

	return release, nil
}

// SelectAsset returns the first asset in list order that matches filter.
func SelectAsset(release *Release, filter AssetFilter) (ReleaseAsset, error) {
	if release == nil {
		return ReleaseAsset{}, fmt.Errorf("release is nil")
	}

	for _, asset := range release.Assets {
		if filter.Matches(asset.Name) {
			return asset, nil
		}
	}

	return ReleaseAsset{}, &errdefs.AssetNotFoundError{
		Tag:    release.TagName,
		Suffix: filter.Suffix,
		Arch:   filter.Arch,
	}
}

// Resolve fetches the latest release of owner/repo and selects the asset
// matching filter.
func (r *Resolver) Resolve(ctx context.Context, owner, repo string, filter AssetFilter) (ReleaseAsset, error) {
	release, err := r.LatestRelease(ctx, owner, repo)
	if err != nil {
		return ReleaseAsset{}, err
	}

	asset, err := SelectAsset(release, filter)
	if err != nil {
		if notFound, ok := err.(*errdefs.AssetNotFoundError); ok {
			notFound.Owner = owner
			notFound.Repo = repo
		}
		return ReleaseAsset{}, err
	}

	r.log.Info("asset selected", "name", asset.Name, "tag", release.TagName)
	return asset, nil
}
