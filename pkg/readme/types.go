// Package readme holds the domain types for fetching and rendering
// GitHub repository READMEs.
package readme

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")
)

// RepoRef identifies a GitHub repository. Immutable once parsed.
type RepoRef struct {
	Owner string
	Repo  string
}

// Key returns the owner/repo cache key for the reference.
func (r RepoRef) Key() string {
	return r.Owner + "/" + r.Repo
}

// ParseRepoURL extracts the owner and repository from a GitHub URL.
// The host must be github.com (case-insensitive, optional www. prefix)
// and the path must carry at least two non-empty segments; anything
// after owner/repo is ignored.
func ParseRepoURL(raw string) (RepoRef, error) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return RepoRef{}, ErrInvalidRepoURL
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host != "github.com" {
		return RepoRef{}, ErrInvalidRepoURL
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return RepoRef{}, ErrInvalidRepoURL
	}

	return RepoRef{Owner: segments[0], Repo: segments[1]}, nil
}
