// Package render turns assistant replies into HTML for the chat page.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"
)

const bullet = "• "

// Renderer converts markdown to HTML. Raw HTML in the input is escaped.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub-flavored markdown and hard line breaks.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithHardWraps(),
			),
		),
	}
}

// Markdown renders text to HTML.
func (r *Renderer) Markdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(normalizeBullets(text)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// normalizeBullets turns "• item" lines into markdown list items. A blank line is
// inserted before the first item of a list so it is not folded into the paragraph above.
func normalizeBullets(text string) string {
	if !strings.Contains(text, bullet) {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+1)
	inList := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, bullet) {
			if !inList && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
				out = append(out, "")
			}
			out = append(out, "- "+strings.TrimPrefix(trimmed, bullet))
			inList = true
			continue
		}
		inList = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
