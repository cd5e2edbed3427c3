// Package markdown renders comment bodies to safe HTML and strips markup from
// plain-text fields.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmark_html "github.com/yuin/goldmark/renderer/html"
)

// TextProcessor is safe for concurrent use.
type TextProcessor struct {
	md     goldmark.Markdown
	body   *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(goldmark_html.WithHardWraps()),
	)

	body := bluemonday.UGCPolicy()
	body.RequireNoFollowOnLinks(true)
	body.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, body: body, strict: bluemonday.StrictPolicy()}
}

// Render converts markdown to sanitized HTML. Raw HTML in the source is
// dropped by the renderer and anything unsafe left is removed by the policy.
func (tp *TextProcessor) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(tp.body.Sanitize(buf.String())), nil
}

// PlainText removes every tag and returns the remaining text unescaped, so
// "a &amp; b" round-trips to "a & b".
func (tp *TextProcessor) PlainText(text string) string {
	return strings.TrimSpace(html.UnescapeString(tp.strict.Sanitize(text)))
}
