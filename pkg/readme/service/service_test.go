package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/readmelens/readmelens/pkg/cache"
	"github.com/readmelens/readmelens/pkg/errors"
	ghclient "github.com/readmelens/readmelens/pkg/github"
	"github.com/readmelens/readmelens/pkg/logger"
	"github.com/readmelens/readmelens/pkg/readme"
	"github.com/readmelens/readmelens/pkg/render"
)

func newTestService() *ReadmeService {
	return NewReadmeService(
		ghclient.NewClient(""),
		cache.NewDefault(),
		render.NewPipeline(),
		logger.NewDefault(),
	)
}

func registerReadme(owner, repo, markdown string) {
	httpmock.RegisterResponder(
		"GET",
		fmt.Sprintf("https://api.github.com/repos/%s/%s/readme", owner, repo),
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(200, map[string]string{
				"name":     "README.md",
				"path":     "README.md",
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString([]byte(markdown)),
			})
		},
	)
}

func TestFetchReadme(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	registerReadme("octocat", "Hello-World", "# Hello World\n")

	svc := newTestService()
	markdown, err := svc.FetchReadme(context.Background(), readme.RepoRef{Owner: "octocat", Repo: "Hello-World"})
	if err != nil {
		t.Fatalf("FetchReadme resulted in an error: %s", err)
	}
	if markdown != "# Hello World\n" {
		t.Errorf("Want markdown %q, got %q", "# Hello World\n", markdown)
	}
}

func TestFetchReadmeUsesCacheWithinTTL(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	registerReadme("octocat", "Hello-World", "# Hello World\n")

	svc := newTestService()
	ref := readme.RepoRef{Owner: "octocat", Repo: "Hello-World"}

	for i := 0; i < 3; i++ {
		if _, err := svc.FetchReadme(context.Background(), ref); err != nil {
			t.Fatalf("FetchReadme resulted in an error: %s", err)
		}
	}

	wantTotalCount := 1
	if gotTotalCount := httpmock.GetTotalCallCount(); wantTotalCount != gotTotalCount {
		t.Errorf("Want total number of API calls to be %d, got %d", wantTotalCount, gotTotalCount)
	}
}

func TestFetchReadmeNotFound(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET",
		"https://api.github.com/repos/octocat/no-readme/readme",
		httpmock.NewJsonResponderOrPanic(404, map[string]string{"message": "Not Found"}),
	)

	svc := newTestService()
	_, err := svc.FetchReadme(context.Background(), readme.RepoRef{Owner: "octocat", Repo: "no-readme"})
	if err == nil {
		t.Fatal("expected error for missing readme")
	}
	if !errors.IsType(err, errors.NotFoundError) {
		t.Errorf("want NOT_FOUND, got %v", err)
	}
}

func TestFetchReadmeRateLimited(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET",
		"https://api.github.com/repos/octocat/Hello-World/readme",
		httpmock.NewJsonResponderOrPanic(403, map[string]string{"message": "API rate limit exceeded"}),
	)

	svc := newTestService()
	_, err := svc.FetchReadme(context.Background(), readme.RepoRef{Owner: "octocat", Repo: "Hello-World"})
	if err == nil {
		t.Fatal("expected error when rate limited")
	}
	if !errors.IsType(err, errors.RateLimitError) {
		t.Errorf("want RATE_LIMITED, got %v", err)
	}
}

func TestFetchReadmeFailuresAreNotCached(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET",
		"https://api.github.com/repos/octocat/Hello-World/readme",
		httpmock.NewJsonResponderOrPanic(404, map[string]string{"message": "Not Found"}),
	)

	svc := newTestService()
	ref := readme.RepoRef{Owner: "octocat", Repo: "Hello-World"}

	if _, err := svc.FetchReadme(context.Background(), ref); err == nil {
		t.Fatal("expected error for missing readme")
	}

	// A later fetch must hit upstream again rather than a cached error.
	registerReadme("octocat", "Hello-World", "# Hello World\n")
	markdown, err := svc.FetchReadme(context.Background(), ref)
	if err != nil {
		t.Fatalf("FetchReadme resulted in an error: %s", err)
	}
	if markdown != "# Hello World\n" {
		t.Errorf("Want markdown %q, got %q", "# Hello World\n", markdown)
	}
}

func TestRenderReadme(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	registerReadme("octocat", "Hello-World", "# Hello World\n\n<script>alert(1)</script>\n")

	svc := newTestService()
	html, err := svc.RenderReadme(context.Background(), readme.RepoRef{Owner: "octocat", Repo: "Hello-World"})
	if err != nil {
		t.Fatalf("RenderReadme resulted in an error: %s", err)
	}
	if want := "Hello World"; !strings.Contains(html, want) {
		t.Errorf("want rendered HTML to contain %q, got %q", want, html)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived rendering: %q", html)
	}
}
