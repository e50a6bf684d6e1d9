package ui

import (
	"strings"
	"testing"

	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{0, "gray"},
		{101, "white"},
		{200, "green"},
		{304, "yellow"},
		{404, "red"},
		{503, "red"},
	}

	for _, tt := range tests {
		if got := statusColor(tt.status); got != tt.expected {
			t.Errorf("statusColor(%d) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestRequestRow(t *testing.T) {
	entry := har.Entry{
		Time:     12.4,
		Request:  har.Request{Method: "GET", URL: "https://api.example.com/v1/[items]"},
		Response: har.Response{Status: 404},
	}

	row := requestRow(entry, false)
	for _, want := range []string{"GET", "[red]404", "api.example.com", "/v1/[items[]]", "12ms"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q does not contain %q", row, want)
		}
	}
	if strings.Contains(row, "●") {
		t.Error("unselected row should not carry the selection mark")
	}
	if !strings.Contains(requestRow(entry, true), "●") {
		t.Error("selected row should carry the selection mark")
	}
}

func TestRequestRowUnknownStatusAndMethod(t *testing.T) {
	row := requestRow(har.Entry{Request: har.Request{URL: "not a url"}}, false)
	if !strings.Contains(row, har.DefaultMethod) {
		t.Errorf("row %q should show the default method", row)
	}
	if !strings.Contains(row, "---") {
		t.Errorf("row %q should show --- for a missing status", row)
	}
}

func TestHighlightJSON(t *testing.T) {
	input := "{\n  \"name\": \"[x]\",\n  \"n\": -1.5,\n  \"ok\": true,\n  \"none\": null\n}"
	got := highlightJSON(input)

	tests := []struct {
		name string
		want string
	}{
		{"key", `[cyan]"name"[-]`},
		{"escaped string", `[green]"[x[]]"[-]`},
		{"number", `[yellow]-1.5[-]`},
		{"true", `[magenta]true[-]`},
		{"null", `[magenta]null[-]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(got, tt.want) {
				t.Errorf("highlightJSON output %q does not contain %q", got, tt.want)
			}
		})
	}
}

func TestHighlightJSONEscapedQuotes(t *testing.T) {
	got := highlightJSON(`{"a": "say \"hi\""}`)
	want := `[green]"say \"hi\""[-]`
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
}

func TestHighlightMarkup(t *testing.T) {
	got := highlightMarkup(`<div class="a"><!-- <b> --></div>`)
	if !strings.Contains(got, "<[blue]div[-]") {
		t.Errorf("opening tag not colored: %q", got)
	}
	if !strings.Contains(got, "</[blue]div[-]") {
		t.Errorf("closing tag not colored: %q", got)
	}
	if !strings.Contains(got, "[::d]<!-- <b> -->[::-]") {
		t.Errorf("comment not dimmed or tag inside it colored: %q", got)
	}
}

func TestFormatTimings(t *testing.T) {
	got := formatTimings(har.Timings{DNS: 10, Wait: 30}, 40)
	if !strings.Contains(got, "DNS Lookup") || !strings.Contains(got, "(25.0%)") {
		t.Errorf("missing DNS phase: %q", got)
	}
	if strings.Contains(got, "Connect") {
		t.Errorf("zero phases should be skipped: %q", got)
	}
	if !strings.Contains(got, "40.00ms") {
		t.Errorf("missing total: %q", got)
	}

	if got := formatTimings(har.Timings{}, 0); !strings.Contains(got, "No timing data") {
		t.Errorf("expected placeholder for missing timings, got %q", got)
	}
}

func TestPreviewText(t *testing.T) {
	tests := []struct {
		name string
		p    preview.Preview
		want string
	}{
		{"empty", preview.Preview{Empty: true}, "No body content"},
		{"json", preview.Preview{Kind: preview.JSON, Text: `{"a": 1}`}, `[cyan]"a"[-]`},
		{"degraded", preview.Preview{Kind: preview.PlainText, Text: "{oops", Degraded: true}, "not valid JSON"},
		{"markup", preview.Preview{Kind: preview.PlainText, Text: "<p>hi</p>"}, "<[blue]p[-]>"},
		{"plain escaped", preview.Preview{Kind: preview.PlainText, Text: "[red]"}, "[red[]]"},
		{"media", preview.Preview{Kind: preview.Audio, Text: "audio body (audio/mpeg, 1.0 KB)"}, "audio body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := previewText(tt.p); !strings.Contains(got, tt.want) {
				t.Errorf("previewText() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestHeadersJSON(t *testing.T) {
	if got := headersJSON(nil); got != "[]" {
		t.Errorf("headersJSON(nil) = %q", got)
	}
	got := headersJSON([]har.Header{{Name: "Accept", Value: "*/*"}})
	if !strings.Contains(got, `"name": "Accept"`) || !strings.Contains(got, `"value": "*/*"`) {
		t.Errorf("unexpected headers JSON %q", got)
	}
}

func TestCookiesText(t *testing.T) {
	got := cookiesText([]har.Cookie{{Name: "sid", Value: "abc", Secure: true, HTTPOnly: true}})
	if !strings.Contains(got, "sid") || !strings.Contains(got, "secure; httpOnly") {
		t.Errorf("unexpected cookie text %q", got)
	}
	if got := cookiesText(nil); !strings.Contains(got, "None") {
		t.Errorf("expected None, got %q", got)
	}
}

func TestTabTablesLineUp(t *testing.T) {
	if len(tabNames) != len(tabIcons) || len(tabNames) != len(tabColors) {
		t.Fatal("tab names, icons and colors must line up")
	}
	if tabNames[bodyTab] != "Body" {
		t.Errorf("bodyTab points at %q", tabNames[bodyTab])
	}
}
