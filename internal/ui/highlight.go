package ui

import (
	"regexp"
	"strings"

	"github.com/rivo/tview"
)

const (
	jsonKeyColor     = "cyan"
	jsonStringColor  = "green"
	jsonNumberColor  = "yellow"
	jsonLiteralColor = "magenta"
)

// highlightJSON colors an indented JSON document with tview tags. Token text
// is escaped so bracketed content inside strings is never read as a tag.
func highlightJSON(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) * 2)

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"':
			end := stringEnd(text, i)
			color := jsonStringColor
			if nextNonSpace(text, end) == ':' {
				color = jsonKeyColor
			}
			writeToken(&sb, color, text[i:end])
			i = end
		case c == '-' || (c >= '0' && c <= '9'):
			end := i + 1
			for end < len(text) && strings.IndexByte("0123456789.eE+-", text[end]) >= 0 {
				end++
			}
			writeToken(&sb, jsonNumberColor, text[i:end])
			i = end
		case strings.HasPrefix(text[i:], "true"):
			writeToken(&sb, jsonLiteralColor, "true")
			i += 4
		case strings.HasPrefix(text[i:], "false"):
			writeToken(&sb, jsonLiteralColor, "false")
			i += 5
		case strings.HasPrefix(text[i:], "null"):
			writeToken(&sb, jsonLiteralColor, "null")
			i += 4
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// stringEnd returns the index just past the JSON string starting at start
func stringEnd(text string, start int) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(text)
}

func nextNonSpace(text string, from int) byte {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return text[i]
		}
	}
	return 0
}

func writeToken(sb *strings.Builder, color, token string) {
	sb.WriteString("[" + color + "]")
	sb.WriteString(tview.Escape(token))
	sb.WriteString("[-]")
}

var (
	markupTagPattern     = regexp.MustCompile(`<(/?)([A-Za-z][\w:.-]*)`)
	markupCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// highlightMarkup escapes HTML or XML for display and colors element names
// and comments
func highlightMarkup(text string) string {
	escaped := tview.Escape(text)
	escaped = markupCommentPattern.ReplaceAllStringFunc(escaped, func(comment string) string {
		// keep tag coloring out of comments
		return "[::d]" + strings.ReplaceAll(comment, "<", "<\x00") + "[::-]"
	})
	escaped = markupTagPattern.ReplaceAllString(escaped, "<$1[blue]$2[-]")
	return strings.ReplaceAll(escaped, "<\x00", "<")
}
