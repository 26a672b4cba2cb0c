// Package textwrap provides display-width-aware word wrapping for terminal output.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap reflows text so that no output line exceeds width display columns.
// Words wider than the limit are emitted on their own line rather than split.
// Existing paragraph breaks (blank lines) are preserved; single newlines
// inside a paragraph are treated as spaces.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := splitParagraphs(text)
	wrapped := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		wrapped = append(wrapped, wrapParagraph(para, width))
	}
	return strings.Join(wrapped, "\n\n")
}

func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func wrapParagraph(para string, width int) string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return ""
	}

	var builder strings.Builder
	lineWidth := 0
	for i, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case i == 0:
			builder.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= width:
			builder.WriteByte(' ')
			builder.WriteString(word)
			lineWidth += 1 + w
		default:
			builder.WriteByte('\n')
			builder.WriteString(word)
			lineWidth = w
		}
	}
	return builder.String()
}
