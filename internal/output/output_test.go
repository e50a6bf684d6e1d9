package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

func init() {
	color.NoColor = true
}

func TestSanitizeOutput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"tab\tnewline\n", "tab\tnewline\n"},
		{"\x1b[31mred", "\\x1b[31mred"},
		{"bell\x07", "bell\\x07"},
		{"del\x7f", "del\\x7f"},
	}

	for _, tt := range tests {
		if got := sanitizeOutput(tt.input); got != tt.expected {
			t.Errorf("sanitizeOutput(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPrintEntries(t *testing.T) {
	entries := []har.Entry{
		{
			ID:       "entry-0",
			Request:  har.Request{Method: "GET", URL: "https://api.example.com/users"},
			Response: har.Response{Status: 200, Content: har.Content{MimeType: "application/json; charset=utf-8"}},
		},
		{
			ID:      "entry-1",
			Request: har.Request{URL: "https://example.com/" + strings.Repeat("a", 80)},
		},
	}

	var buf bytes.Buffer
	PrintEntries(&buf, entries)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	first := strings.Fields(lines[0])
	expected := []string{"entry-0", "GET", "200", "application/json", "https://api.example.com/users"}
	if strings.Join(first, " ") != strings.Join(expected, " ") {
		t.Errorf("unexpected first line %q", lines[0])
	}

	second := strings.Fields(lines[1])
	if second[1] != har.DefaultMethod || second[2] != "---" || second[3] != "-" {
		t.Errorf("unexpected second line %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "...") {
		t.Errorf("expected truncated URL, got %q", lines[1])
	}
}

func TestPrintEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintEntries(&buf, nil)
	if !strings.Contains(buf.String(), "No matching entries") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, 2, 10, []string{"status:404"})
	if !strings.Contains(buf.String(), "2 of 10 entries (status:404)") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	PrintSummary(&buf, 10, 10, nil)
	if strings.TrimSpace(buf.String()) != "10 entries" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	PrintPreview(&buf, preview.Preview{Empty: true})
	if strings.TrimSpace(buf.String()) != "(no body)" {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	PrintPreview(&buf, preview.Preview{Kind: preview.PlainText, Text: "{oops", Degraded: true})
	if !strings.Contains(buf.String(), "did not parse") || !strings.Contains(buf.String(), "{oops") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
