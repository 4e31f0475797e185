// Package render converts README markdown to HTML safe to inject into
// a browser page.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Pipeline converts markdown to HTML and strips unsafe markup.
type Pipeline struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewPipeline creates a Pipeline with GitHub-flavored markdown support.
// Raw HTML passes through the converter untouched so the sanitizer is
// the single authority on what reaches the client.
func NewPipeline() *Pipeline {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &Pipeline{
		markdown: md,
		policy:   bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to sanitized HTML. Script tags, inline
// event handlers and javascript: URLs never survive, regardless of
// whether they arrive as markdown or embedded raw HTML.
func (p *Pipeline) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return p.policy.Sanitize(buf.String()), nil
}
