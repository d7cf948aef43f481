// Package markdown renders ticket comments and strips markup from free-text
// fields before they are stored.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	// ToHTMLSanitized renders markdown and sanitizes the resulting HTML.
	ToHTMLSanitized(markdown string) (string, error)
	// PlainText removes every tag from s and trims it.
	PlainText(s string) string
}

type markdownServiceImpl struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)

	return &markdownServiceImpl{
		md:     md,
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

func (s *markdownServiceImpl) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}

// PlainText unescapes entities after stripping so "Fix A&C" survives unchanged.
func (s *markdownServiceImpl) PlainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(text)))
}

var defaultService = NewMarkdownService()

// PlainText strips markup using a shared service instance.
func PlainText(s string) string {
	return defaultService.PlainText(s)
}
