package service

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v32/github"
	"golang.org/x/sync/singleflight"

	"github.com/readmelens/readmelens/pkg/cache"
	"github.com/readmelens/readmelens/pkg/errors"
	ghclient "github.com/readmelens/readmelens/pkg/github"
	"github.com/readmelens/readmelens/pkg/logger"
	"github.com/readmelens/readmelens/pkg/readme"
	"github.com/readmelens/readmelens/pkg/render"
)

// ReadmeService fetches repository READMEs through the cache and
// renders them to sanitized HTML.
type ReadmeService struct {
	client   *ghclient.Client
	cache    *cache.ReadmeCache
	pipeline *render.Pipeline
	group    singleflight.Group
	logger   *logger.Logger
}

func NewReadmeService(client *ghclient.Client, readmeCache *cache.ReadmeCache, pipeline *render.Pipeline, logger *logger.Logger) *ReadmeService {
	return &ReadmeService{
		client:   client,
		cache:    readmeCache,
		pipeline: pipeline,
		logger:   logger,
	}
}

// FetchReadme returns the raw README markdown for ref, from cache when
// the entry is still live. Concurrent misses for the same key share a
// single upstream call.
func (s *ReadmeService) FetchReadme(ctx context.Context, ref readme.RepoRef) (string, error) {
	key := ref.Key()
	if markdown, ok := s.cache.Get(key); ok {
		s.logger.Debug("readme cache hit", "repo", key)
		return markdown, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		markdown, err := s.client.Readme(ctx, ref.Owner, ref.Repo)
		if err != nil {
			return "", classifyUpstreamError(err)
		}
		s.cache.Set(key, markdown)
		s.logger.Info("fetched readme from upstream", "repo", key)
		return markdown, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// RenderReadme fetches the README for ref and converts it to
// sanitized HTML.
func (s *ReadmeService) RenderReadme(ctx context.Context, ref readme.RepoRef) (string, error) {
	markdown, err := s.FetchReadme(ctx, ref)
	if err != nil {
		return "", err
	}

	html, err := s.pipeline.Render(markdown)
	if err != nil {
		return "", errors.NewInternalError("failed to render readme", err, map[string]interface{}{
			"repo": ref.Key(),
		})
	}
	return html, nil
}

// classifyUpstreamError maps GitHub API failures onto the error
// taxonomy consumed by the HTTP layer.
func classifyUpstreamError(err error) *errors.AppError {
	switch e := err.(type) {
	case *gh.RateLimitError, *gh.AbuseRateLimitError:
		return errors.NewRateLimitError("GitHub API rate limit exceeded.", nil)
	case *gh.ErrorResponse:
		switch e.Response.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFoundError("Repository or Readme not found.", nil)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return errors.NewRateLimitError("GitHub API rate limit exceeded.", nil)
		}
		return errors.NewUpstreamError("unexpected GitHub API response", err, map[string]interface{}{
			"status": e.Response.StatusCode,
		})
	}
	return errors.NewUpstreamError("GitHub API request failed", err, nil)
}
