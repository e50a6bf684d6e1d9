package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
	"github.com/cnharrison/harview/internal/filter"
	"github.com/cnharrison/harview/internal/har"
)

func responseEntry(url, mime, text, encoding string) har.Entry {
	return har.Entry{
		ID:      "entry-0",
		Request: har.Request{Method: "GET", URL: url},
		Response: har.Response{Status: 200, Content: har.Content{
			MimeType: mime, Text: text, Encoding: encoding, HasText: true,
		}},
	}
}

func TestBuildPNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	entry := responseEntry("https://cdn.example.com/assets/logo.png", "image/png", codec.EncodeBase64Bytes(png), "base64")

	a, err := Build(entry, body.Response)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, png, a.Bytes)
	assert.Equal(t, "image/png", a.MimeType)
	assert.True(t, strings.HasSuffix(a.Filename, ".png"))
	assert.Equal(t, "logo.png", a.Filename)
}

func TestBuildNoBody(t *testing.T) {
	entry := har.Entry{Request: har.Request{URL: "https://example.com/"}}

	a, err := Build(entry, body.Response)
	assert.NoError(t, err)
	assert.Nil(t, a)

	a, err = Build(entry, body.Request)
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestBuildDecodeFailure(t *testing.T) {
	entry := responseEntry("https://example.com/x", "image/png", "@@not base64@@", "base64")

	a, err := Build(entry, body.Response)
	assert.Nil(t, a)
	var de *codec.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestBuildRequestBody(t *testing.T) {
	entry := har.Entry{
		Request: har.Request{
			Method:   "POST",
			URL:      "https://api.example.com/",
			PostData: &har.PostData{MimeType: "application/json", Text: `{"a":1}`, HasText: true},
		},
	}

	a, err := Build(entry, body.Request)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), a.Bytes)
	assert.Equal(t, "har-request.json", a.Filename)
}

func TestBuildDefaultMime(t *testing.T) {
	a, err := Build(responseEntry("not a url", "", "abc", ""), body.Response)
	require.NoError(t, err)
	assert.Equal(t, DefaultMimeType, a.MimeType)
	assert.Equal(t, "har-response.bin", a.Filename)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		mime     string
		target   body.Target
		expected string
	}{
		{"last segment", "https://example.com/a/b/report.pdf?x=1", "application/pdf", body.Response, "report.pdf"},
		{"trailing slash", "https://example.com/a/b/", "text/html", body.Response, "b"},
		{"root", "https://example.com/", "text/html", body.Response, "har-response.html"},
		{"no path", "https://example.com", "application/json; charset=utf-8", body.Response, "har-response.json"},
		{"relative url", "/images/cat.gif", "image/gif", body.Response, "har-response.gif"},
		{"garbage", "::::", "", body.Request, "har-request.bin"},
		{"escaped segment", "https://example.com/files/my%20doc.txt", "text/plain", body.Response, "my doc.txt"},
		{"escaped slash", "https://example.com/a%2Fb", "text/plain", body.Response, "a_b"},
		{"dot dot", "https://example.com/x/..", "text/plain", body.Response, "har-response.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.url, tt.mime, tt.target))
		})
	}
}

func TestHARSubsetRoundTrip(t *testing.T) {
	src := `{"log":{"version":"1.2","creator":{"name":"Chrome","version":"1"},"entries":[
		{"request":{"method":"GET","url":"https://a.test/1"},"response":{"status":200,"content":{"mimeType":"text/plain","text":"one"}},"_custom":true},
		{"request":{"method":"POST","url":"https://a.test/2"},"response":{"status":404,"content":{}}},
		{"request":{"method":"GET","url":"https://a.test/3"},"response":{"status":500,"content":{}}}
	]}}`
	doc, err := har.Parse([]byte(src))
	require.NoError(t, err)

	data, err := HARSubset(*doc, []har.Entry{doc.Entries[0], doc.Entries[2]})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_custom": true`)

	out, err := har.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Chrome", out.Creator.Name)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "https://a.test/1", out.Entries[0].Request.URL)
	assert.Equal(t, "one", out.Entries[0].Response.Content.Text)
	assert.Equal(t, 500, out.Entries[1].Response.Status)
}

func TestHARSubsetEmpty(t *testing.T) {
	data, err := HARSubset(har.Document{}, nil)
	require.NoError(t, err)

	out, err := har.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, out.Entries)
	assert.Equal(t, "harview", out.Creator.Name)
	assert.Equal(t, "1.2", out.Version)
}

func TestHARSubsetWithoutRaw(t *testing.T) {
	entry := har.Entry{ID: "entry-0", Request: har.Request{Method: "GET", URL: "https://x.test/"}}
	data, err := HARSubset(har.Document{}, []har.Entry{entry})
	require.NoError(t, err)

	out, err := har.Parse(data)
	require.NoError(t, err)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, "https://x.test/", out.Entries[0].Request.URL)
}

func TestSubsetFilename(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		base     string
		criteria filter.Criteria
		expected string
	}{
		{"no filters", "/tmp/capture.har", filter.Criteria{}, "capture_all_entries_20240501_123045.har"},
		{"status", "capture.har", filter.Criteria{Status: "404"}, "capture_filtered_status_404_20240501_123045.har"},
		{"type and errors", "capture.har", filter.Criteria{Type: "fetch", ErrorsOnly: true}, "capture_filtered_fetch_errors_20240501_123045.har"},
		{"search is cleaned", "capture.har", filter.Criteria{Query: "a b/c"}, "capture_filtered_search_a_b_c_20240501_123045.har"},
		{"no base", "", filter.Criteria{}, "har_all_entries_20240501_123045.har"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubsetFilename(tt.base, tt.criteria, now))
		})
	}
}

func TestSelectionFilename(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "session_selected_3_20240501_123045.har", SelectionFilename("dir/session.har", 3, now))
}

func TestCurlCommand(t *testing.T) {
	entry := har.Entry{
		Request: har.Request{
			Method: "POST",
			URL:    "https://api.example.com/items?q=it's",
			Headers: []har.Header{
				{Name: "Host", Value: "api.example.com"},
				{Name: ":authority", Value: "api.example.com"},
				{Name: "Content-Type", Value: "application/json"},
				{Name: "Content-Length", Value: "14"},
			},
			PostData: &har.PostData{MimeType: "application/json", Text: `{"name":"o'k"}`, HasText: true},
		},
	}

	expected := `curl -X 'POST' 'https://api.example.com/items?q=it'\''s'` +
		` -H 'Content-Type: application/json'` +
		` --data-binary '{"name":"o'\''k"}'`
	assert.Equal(t, expected, CurlCommand(entry))
}

func TestCurlCommandBase64Body(t *testing.T) {
	entry := har.Entry{
		Request: har.Request{
			URL:      "https://x.test/",
			PostData: &har.PostData{Text: codec.EncodeBase64("a=1"), Encoding: "base64", HasText: true},
		},
	}
	assert.Equal(t, `curl -X 'UNKNOWN' 'https://x.test/' --data-binary 'a=1'`, CurlCommand(entry))
}

func TestMarkdownSummary(t *testing.T) {
	entry := har.Entry{
		ID:              "entry-0",
		StartedDateTime: "2024-05-01T12:00:00.000Z",
		Time:            2500,
		Request: har.Request{
			Method: "GET",
			URL:    "https://api.example.com/v1/users/7",
			Headers: []har.Header{
				{Name: "Authorization", Value: "Bearer abcdefghijklmnopqrstuvwxyz"},
				{Name: "Accept-Language", Value: "en"},
			},
		},
		Response: har.Response{
			Status:     404,
			StatusText: "Not Found",
			Headers:    []har.Header{{Name: "Content-Type", Value: "application/json"}},
			Content:    har.Content{MimeType: "application/json", Text: `{"error":"missing"}`, HasText: true},
		},
	}

	md := MarkdownSummary(entry, nil)
	assert.True(t, strings.HasPrefix(md, "# ⚠️ GET 404 - api.example.com Request Issue"))
	assert.Contains(t, md, "- **Path:** /v1/users/7")
	assert.Contains(t, md, "🐌 Sluggish")
	assert.Contains(t, md, "Bearer abc...wxyz (redacted)")
	assert.Contains(t, md, "**Error Response:**\n```json\n{\"error\":\"missing\"}\n```")
	assert.Contains(t, md, "Verify URL path is correct")
	assert.Contains(t, md, "2024-05-01 12:00:00 UTC")
	assert.NotContains(t, md, "Request Body")
}

func TestMarkdownSummaryMediaAndResolver(t *testing.T) {
	r, err := body.NewResolver(4, nil)
	require.NoError(t, err)

	entry := responseEntry("https://cdn.example.com/a.png", "image/png", codec.EncodeBase64Bytes([]byte{1, 2, 3}), "base64")
	md := MarkdownSummary(entry, r)
	assert.Contains(t, md, "**Response Body:** image body (image/png, 3 B)")
	assert.Contains(t, md, "# ✅ GET 200")
	assert.Equal(t, 2, r.Len())
}

func TestWriteFileDoesNotOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	first, err := WriteFile(dir, "logo.png", []byte("one"))
	require.NoError(t, err)
	second, err := WriteFile(dir, "logo.png", []byte("two"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "logo.png"), first)
	assert.Equal(t, filepath.Join(dir, "logo-1.png"), second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}
