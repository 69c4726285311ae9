// Package errdefs defines the error kinds an install run can fail with.
//
// Every kind is fatal to the run. Callers distinguish them with errors.As;
// there is no exit-code mapping.
package errdefs

import (
	"fmt"
)

// NetworkError is a transport failure or a non-2xx response.
type NetworkError struct {
	Op         string // "fetch release", "download asset"
	URL        string
	StatusCode int   // 0 when the request never got a response
	Err        error // transport error, nil for status failures
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Op, e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AssetNotFoundError means no asset in the release matched the filter.
type AssetNotFoundError struct {
	Owner  string
	Repo   string
	Tag    string
	Suffix string
	Arch   string
}

func (e *AssetNotFoundError) Error() string {
	release := "latest release"
	if e.Tag != "" {
		release = fmt.Sprintf("release %s", e.Tag)
	}
	return fmt.Sprintf("no %s asset for %s found in %s of %s/%s", e.Suffix, e.Arch, release, e.Owner, e.Repo)
}

// ParseError is a response body or value that does not have the expected shape.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FilesystemError is a failed directory, file or permission operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
