package ui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/rivo/tview"

	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

// statusColor picks the tview color for an HTTP status
func statusColor(status int) string {
	switch {
	case status == 0:
		return "gray"
	case status >= statusCodeClientError:
		return "red"
	case status >= statusCodeRedirect:
		return "yellow"
	case status >= statusCodeSuccess:
		return "green"
	default:
		return "white"
	}
}

// requestRow renders one line of the requests list
func requestRow(entry har.Entry, selected bool) string {
	host, path := entry.Request.URL, ""
	if u, err := url.Parse(entry.Request.URL); err == nil && u.Host != "" {
		host, path = u.Host, u.Path
	}
	if len(path) > maxPathDisplayLength {
		path = path[:maxPathDisplayLength-pathTruncateOffset] + "..."
	}

	mark := " "
	if selected {
		mark = "[green::b]●[-::-]"
	}
	status := "---"
	if entry.Response.Status != 0 {
		status = fmt.Sprintf("%3d", entry.Response.Status)
	}

	return fmt.Sprintf("%s [cyan]%-4s[white] [%s]%s[white] [blue]%s[white] [::d]%s[::-] [yellow]%.0fms[white]",
		mark,
		tview.Escape(entry.Request.DisplayMethod()),
		statusColor(entry.Response.Status), status,
		tview.Escape(host),
		tview.Escape(path),
		entry.Time)
}

// headersText lists headers one per line
func headersText(headers []har.Header) string {
	if len(headers) == 0 {
		return "[::d]None[::-]"
	}
	var sb strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&sb, "  [cyan]%s[white]: %s\n", tview.Escape(h.Name), tview.Escape(h.Value))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func cookiesText(cookies []har.Cookie) string {
	if len(cookies) == 0 {
		return "[::d]None[::-]"
	}
	var sb strings.Builder
	for _, c := range cookies {
		fmt.Fprintf(&sb, "  [cyan]%s[white] = %s", tview.Escape(c.Name), tview.Escape(c.Value))
		var attrs []string
		if c.Domain != "" {
			attrs = append(attrs, "domain="+c.Domain)
		}
		if c.Path != "" {
			attrs = append(attrs, "path="+c.Path)
		}
		if c.Secure {
			attrs = append(attrs, "secure")
		}
		if c.HTTPOnly {
			attrs = append(attrs, "httpOnly")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&sb, " [::d](%s)[::-]", tview.Escape(strings.Join(attrs, "; ")))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// formatTimings formats timing information with visual bars
func formatTimings(timings har.Timings, totalTime float64) string {
	var result strings.Builder
	result.WriteString("[yellow]Timing Breakdown:[white]\n\n")

	phases := []struct {
		name  string
		value float64
		color string
	}{
		{"🚫 Blocked", timings.Blocked, "red"},
		{"🔍 DNS Lookup", timings.DNS, "blue"},
		{"🔗 Connect", timings.Connect, "green"},
		{"🔒 SSL/TLS", timings.SSL, "magenta"},
		{"📤 Send", timings.Send, "cyan"},
		{"⏳ Wait", timings.Wait, "yellow"},
		{"📥 Receive", timings.Receive, "white"},
	}

	if totalTime <= 0 {
		result.WriteString("[::d]No timing data[::-]")
		return result.String()
	}

	for _, phase := range phases {
		if phase.value <= 0 {
			continue
		}
		ratio := min(phase.value/totalTime, 1)
		barWidth := max(int(ratio*timingBarMaxWidth), minBarWidth)
		bar := strings.Repeat("█", barWidth) + strings.Repeat("░", timingBarMaxWidth-barWidth)
		fmt.Fprintf(&result, "%-12s [%s]%s[white] %.2fms (%.1f%%)\n",
			phase.name, phase.color, bar, phase.value, ratio*percentageMultiplier)
	}

	fmt.Fprintf(&result, "\n[yellow]Total Time:[white] %.2fms", totalTime)
	return result.String()
}

// previewText renders a body preview for the Body tab
func previewText(p preview.Preview) string {
	if p.Empty {
		return "[::d]No body content[::-]"
	}
	var text string
	switch p.Kind {
	case preview.JSON:
		text = highlightJSON(p.Text)
	case preview.PlainText:
		if looksLikeMarkup(p.Text) {
			text = highlightMarkup(p.Text)
		} else {
			text = tview.Escape(p.Text)
		}
	default:
		text = "[yellow]" + tview.Escape(p.Text) + "[white]"
	}
	if p.Degraded {
		text = "[red]Body is not valid JSON, showing raw text[white]\n\n" + text
	}
	return text
}

func looksLikeMarkup(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<")
}

func loadedMessage(count int, path string) string {
	return fmt.Sprintf("Loaded %d entries from %s", count, filepath.Base(path))
}

// Plain-text summaries for the clipboard

func requestSummary(entry har.Entry, bodyText string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request Summary:\nMethod: %s\nURL: %s\nHTTP Version: %s\n\nHeaders:\n",
		entry.Request.DisplayMethod(), entry.Request.URL, entry.Request.HTTPVersion)
	for _, h := range entry.Request.Headers {
		fmt.Fprintf(&sb, "  %s: %s\n", h.Name, h.Value)
	}
	if bodyText != "" {
		fmt.Fprintf(&sb, "\nBody:\n%s", bodyText)
	}
	return sb.String()
}

func responseSummary(entry har.Entry, bodyText string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Response Summary:\nStatus: %d %s\nHTTP Version: %s\nContent Type: %s\nSize: %d bytes\n\nHeaders:\n",
		entry.Response.Status, entry.Response.StatusText, entry.Response.HTTPVersion,
		entry.Response.Content.MimeType, entry.Response.Content.Size)
	for _, h := range entry.Response.Headers {
		fmt.Fprintf(&sb, "  %s: %s\n", h.Name, h.Value)
	}
	if bodyText != "" {
		fmt.Fprintf(&sb, "\nBody:\n%s", bodyText)
	}
	return sb.String()
}

func timingSummary(entry har.Entry) string {
	t := entry.Timings
	return fmt.Sprintf("Timing Breakdown:\nDNS: %.2fms\nConnect: %.2fms\nSSL: %.2fms\nSend: %.2fms\nWait: %.2fms\nReceive: %.2fms\nTotal: %.2fms",
		t.DNS, t.Connect, t.SSL, t.Send, t.Wait, t.Receive, entry.Time)
}

func headersJSON(headers []har.Header) string {
	if headers == nil {
		headers = []har.Header{}
	}
	data, err := json.MarshalIndent(headers, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
