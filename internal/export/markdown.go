package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

var (
	importantRequestHeaders  = []string{"authorization", "content-type", "accept", "user-agent", "x-", "cookie", "auth"}
	importantResponseHeaders = []string{"content-type", "content-length", "cache-control", "set-cookie", "location", "server", "x-"}
)

// BodySource resolves entry bodies; *body.Resolver satisfies it
type BodySource interface {
	Get(entry har.Entry, target body.Target) (*body.Decoded, error)
}

type directSource struct{}

func (directSource) Get(entry har.Entry, target body.Target) (*body.Decoded, error) {
	return body.Resolve(body.Record(entry, target))
}

// MarkdownSummary renders entry as a markdown report for support tickets.
// src may be nil, in which case bodies are decoded directly.
func MarkdownSummary(entry har.Entry, src BodySource) string {
	if src == nil {
		src = directSource{}
	}
	host, path := entry.Request.URL, ""
	if u, err := url.Parse(entry.Request.URL); err == nil && u.Host != "" {
		host, path = u.Host, u.Path
	}
	status := entry.Response.Status
	method := entry.Request.DisplayMethod()

	var summary strings.Builder

	statusEmoji := "✅"
	switch {
	case status >= 500 || status == 0:
		statusEmoji = "🔥"
	case status >= 400:
		statusEmoji = "⚠️"
	case status >= 300:
		statusEmoji = "↩️"
	}
	fmt.Fprintf(&summary, "# %s %s %d - %s Request Issue\n\n", statusEmoji, method, status, host)

	summary.WriteString("## 🚨 Critical Info\n\n")
	if ts, ok := entry.StartedAt(); ok {
		fmt.Fprintf(&summary, "- **Date/Time:** %s (%s UTC)\n",
			ts.Format("Monday, January 2, 2006 at 3:04:05 PM"), ts.UTC().Format("2006-01-02 15:04:05"))
	} else {
		summary.WriteString("- **Date/Time:** unknown\n")
	}
	fmt.Fprintf(&summary, "- **Status:** %d %s\n", status, entry.Response.StatusText)
	fmt.Fprintf(&summary, "- **Response Time:** %.0fms", entry.Time)
	if entry.Time > 5000 {
		summary.WriteString(" ⚠️ SLOW")
	} else if entry.Time > 2000 {
		summary.WriteString(" 🐌 Sluggish")
	}
	summary.WriteString("\n")
	fmt.Fprintf(&summary, "- **Method:** %s\n", method)
	fmt.Fprintf(&summary, "- **Host:** %s\n", host)
	fmt.Fprintf(&summary, "- **Path:** %s\n\n", path)

	summary.WriteString("## 🔗 Request Details\n\n")
	fmt.Fprintf(&summary, "**Full URL:** `%s`\n\n", entry.Request.URL)

	if reqHeaders := pickHeaders(entry.Request.Headers, importantRequestHeaders); len(reqHeaders) > 0 {
		summary.WriteString("## 📋 Key Request Headers\n\n")
		for _, header := range reqHeaders {
			fmt.Fprintf(&summary, "- **%s:** `%s`\n", header.Name, redactHeader(header))
		}
		summary.WriteString("\n")
	}

	if d, err := src.Get(entry, body.Request); err == nil && d != nil && d.Text != "" {
		summary.WriteString("## 📤 Request Body\n\n")
		writeFenced(&summary, d, 500)
	}

	summary.WriteString("## 📥 Response Info\n\n")
	if respHeaders := pickHeaders(entry.Response.Headers, importantResponseHeaders); len(respHeaders) > 0 {
		summary.WriteString("**Key Headers:**\n")
		for _, header := range respHeaders {
			fmt.Fprintf(&summary, "- **%s:** `%s`\n", header.Name, header.Value)
		}
		summary.WriteString("\n")
	}

	d, err := src.Get(entry, body.Response)
	switch {
	case err != nil:
		fmt.Fprintf(&summary, "**Response Body:** unavailable (%v)\n\n", err)
	case d != nil && preview.Classify(d.MimeType).IsMedia():
		fmt.Fprintf(&summary, "**Response Body:** %s\n\n", preview.MediaSummary(preview.Classify(d.MimeType), d.MimeType, len(d.Bytes)))
	case d != nil && d.Text != "":
		if status >= 400 || strings.Contains(strings.ToLower(d.Text), "error") {
			summary.WriteString("**Error Response:**\n")
		} else {
			summary.WriteString("**Response Body:**\n")
		}
		limit := 800
		if status >= 400 {
			limit = 1500
		}
		writeFenced(&summary, d, limit)
	}

	if entry.Time > 1000 || status >= 400 {
		t := entry.Timings
		summary.WriteString("## ⏱️ Performance Breakdown\n\n")
		fmt.Fprintf(&summary, "- **DNS:** %.0fms\n", t.DNS)
		fmt.Fprintf(&summary, "- **Connect:** %.0fms\n", t.Connect)
		if t.SSL > 0 {
			fmt.Fprintf(&summary, "- **SSL:** %.0fms\n", t.SSL)
		}
		fmt.Fprintf(&summary, "- **Send:** %.0fms\n", t.Send)
		fmt.Fprintf(&summary, "- **Wait (TTFB):** %.0fms\n", t.Wait)
		fmt.Fprintf(&summary, "- **Receive:** %.0fms\n", t.Receive)
		fmt.Fprintf(&summary, "- **Total:** %.0fms\n\n", entry.Time)
	}

	if status >= 400 {
		summary.WriteString("## 🔧 Quick Troubleshooting\n\n")
		switch {
		case status == 401:
			summary.WriteString("- Check authentication headers/tokens\n- Verify API keys are valid\n- Check token expiration\n")
		case status == 403:
			summary.WriteString("- Check user permissions\n- Verify resource access rights\n- Check rate limiting\n")
		case status == 404:
			summary.WriteString("- Verify URL path is correct\n- Check if resource exists\n- Validate route configuration\n")
		case status == 429:
			summary.WriteString("- Rate limiting active\n- Check retry-after header\n- Implement backoff strategy\n")
		case status >= 500:
			summary.WriteString("- Server-side issue\n- Check server logs\n- Verify service health\n")
		}
		summary.WriteString("\n")
	}

	summary.WriteString("---\n*Generated by harview for support investigation*")
	return summary.String()
}

func pickHeaders(headers []har.Header, important []string) []har.Header {
	var picked []har.Header
	for _, header := range headers {
		name := strings.ToLower(header.Name)
		for _, want := range important {
			if strings.Contains(name, want) {
				picked = append(picked, header)
				break
			}
		}
	}
	return picked
}

func redactHeader(header har.Header) string {
	value := header.Value
	if strings.Contains(strings.ToLower(header.Name), "auth") && len(value) > 14 {
		return value[:10] + "..." + value[len(value)-4:] + " (redacted)"
	}
	return value
}

func fenceLanguage(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "json"):
		return "json"
	case strings.Contains(mt, "xml"):
		return "xml"
	case strings.Contains(mt, "html"):
		return "html"
	case strings.Contains(mt, "css"):
		return "css"
	}
	return "text"
}

func writeFenced(sb *strings.Builder, d *body.Decoded, limit int) {
	lang := fenceLanguage(d.MimeType)
	text := d.Text
	runes := []rune(text)
	if len(runes) > limit {
		fmt.Fprintf(sb, "```%s\n%s\n... (showing first %d chars of %d total)\n```\n\n", lang, string(runes[:limit]), limit, len(runes))
		return
	}
	fmt.Fprintf(sb, "```%s\n%s\n```\n\n", lang, text)
}
