package handler

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()

	// Comments are plain text; any markup is stripped before storage.
	commentPolicy = bluemonday.StrictPolicy()
)

// renderMarkdown converts post markdown into sanitized HTML for the detail
// payload. Rendering happens on read, the stored content stays markdown.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

func sanitizeCommentContent(content string) string {
	return strings.TrimSpace(commentPolicy.Sanitize(content))
}
