// Package output prints colored listings for the command line.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

const maxURLWidth = 60

var (
	successColor   = color.New(color.FgGreen, color.Bold)
	redirectColor  = color.New(color.FgYellow, color.Bold)
	clientErrColor = color.New(color.FgRed, color.Bold)
	serverErrColor = color.New(color.FgRed, color.Bold, color.BgWhite)
	headerKeyColor = color.New(color.FgCyan)
	methodColor    = color.New(color.FgMagenta, color.Bold)
	urlColor       = color.New(color.FgBlue)
	dimColor       = color.New(color.Faint)
)

// sanitizeOutput escapes control characters so captured data cannot drive
// the terminal
func sanitizeOutput(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(r)
		case r == '\x1b':
			result.WriteString("\\x1b")
		case unicode.IsControl(r) && r < 0x20:
			fmt.Fprintf(&result, "\\x%02x", r)
		case r == 0x7F:
			result.WriteString("\\x7f")
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func statusColor(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return successColor
	case code >= 300 && code < 400:
		return redirectColor
	case code >= 400 && code < 500:
		return clientErrColor
	default:
		return serverErrColor
	}
}

func statusText(code int) string {
	if code == 0 {
		return "---"
	}
	return strconv.Itoa(code)
}

func truncateURL(u string) string {
	runes := []rune(u)
	if len(runes) > maxURLWidth {
		return string(runes[:maxURLWidth-3]) + "..."
	}
	return u
}

// PrintEntries lists entries one per line: ID, method, status, MIME, URL
func PrintEntries(w io.Writer, entries []har.Entry) {
	if len(entries) == 0 {
		dimColor.Fprintln(w, "No matching entries")
		return
	}

	for _, entry := range entries {
		dimColor.Fprintf(w, "%-10s ", entry.ID)
		methodColor.Fprintf(w, "%-7s ", sanitizeOutput(entry.Request.DisplayMethod()))
		statusColor(entry.Response.Status).Fprintf(w, "%3s ", statusText(entry.Response.Status))
		headerKeyColor.Fprintf(w, "%-24s ", sanitizeOutput(mimeColumn(entry.Response.Content.MimeType)))
		urlColor.Fprintln(w, sanitizeOutput(truncateURL(entry.Request.URL)))
	}
}

func mimeColumn(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if mime == "" {
		return "-"
	}
	return mime
}

// PrintSummary reports how many entries the filters left visible
func PrintSummary(w io.Writer, visible, total int, labels []string) {
	if len(labels) == 0 {
		dimColor.Fprintf(w, "\n%d entries\n", total)
		return
	}
	dimColor.Fprintf(w, "\n%d of %d entries (%s)\n", visible, total, strings.Join(labels, ", "))
}

// PrintEntryHeader prints the request line and status of entry
func PrintEntryHeader(w io.Writer, entry har.Entry) {
	methodColor.Fprintf(w, "%s ", sanitizeOutput(entry.Request.DisplayMethod()))
	urlColor.Fprintln(w, sanitizeOutput(entry.Request.URL))
	statusColor(entry.Response.Status).Fprintf(w, "%s %s\n", statusText(entry.Response.Status),
		sanitizeOutput(entry.Response.StatusText))
	dimColor.Fprintf(w, "  ID: %s  Time: %.0fms\n\n", entry.ID, entry.Time)
}

// PrintPreview prints a rendered body
func PrintPreview(w io.Writer, p preview.Preview) {
	if p.Empty {
		dimColor.Fprintln(w, "(no body)")
		return
	}
	if p.Degraded {
		dimColor.Fprintf(w, "(declared %s but did not parse; shown as text)\n", preview.JSON)
	}
	fmt.Fprintln(w, sanitizeOutput(p.Text))
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, msg string) {
	successColor.Fprintf(w, "✓ %s\n", msg)
}

// PrintError prints an error message
func PrintError(w io.Writer, msg string) {
	clientErrColor.Fprintf(w, "✗ %s\n", msg)
}
