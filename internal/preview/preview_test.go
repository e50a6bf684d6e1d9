package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/harview/internal/body"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mime     string
		expected Kind
	}{
		{"image/png", Image},
		{"IMAGE/SVG+XML", Image},
		{"audio/mpeg", Audio},
		{"video/mp4", Video},
		{"application/json", JSON},
		{"application/vnd.api+json; charset=utf-8", JSON},
		{"text/html", PlainText},
		{"", PlainText},
		{"image/json", Image},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.mime))
		})
	}
}

func decoded(text, mime string) *body.Decoded {
	return &body.Decoded{Bytes: []byte(text), Text: text, MimeType: mime}
}

func TestRenderJSON(t *testing.T) {
	p := Render("application/json", decoded(`{"a":1}`, "application/json"))
	assert.Equal(t, JSON, p.Kind)
	assert.False(t, p.Degraded)
	assert.Equal(t, "{\n  \"a\": 1\n}", p.Text)
}

func TestRenderJSONDropsSurroundingWhitespace(t *testing.T) {
	p := Render("application/json", decoded("\n {\"a\":1}\n\n  ", "application/json"))
	assert.Equal(t, JSON, p.Kind)
	assert.Equal(t, "{\n  \"a\": 1\n}", p.Text)
}

func TestRenderJSONKeepsKeyOrder(t *testing.T) {
	p := Render("application/json", decoded(`{"z":1,"a":[true,null]}`, "application/json"))
	assert.Less(t, strings.Index(p.Text, `"z"`), strings.Index(p.Text, `"a"`))
}

func TestRenderInvalidJSONDegrades(t *testing.T) {
	p := Render("application/json", decoded(`{"a":`, "application/json"))
	assert.Equal(t, PlainText, p.Kind)
	assert.True(t, p.Degraded)
	assert.Equal(t, `{"a":`, p.Text)
}

func TestRenderMarkup(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		text     string
		contains string
	}{
		{"html", "text/html; charset=utf-8", "<div><p>hi</p></div>", "\n  <p>"},
		{"xml", "application/xml", "<a><b>1</b></a>", "  <b>"},
		{"plain", "text/plain", "<a><b>1</b></a>", "<a><b>1</b></a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render(tt.mime, decoded(tt.text, tt.mime))
			assert.Equal(t, PlainText, p.Kind)
			assert.Contains(t, p.Text, tt.contains)
		})
	}
}

func TestRenderMedia(t *testing.T) {
	d := &body.Decoded{Bytes: make([]byte, 2048), MimeType: "image/png"}
	p := Render("image/png", d)
	assert.Equal(t, Image, p.Kind)
	assert.Equal(t, "image body (image/png, 2.0 KB)", p.Text)

	p = Render("audio/ogg", &body.Decoded{Bytes: []byte{1, 2, 3}})
	assert.Equal(t, "audio body (audio/ogg, 3 B)", p.Text)
}

func TestRenderNilBody(t *testing.T) {
	p := Render("application/json", nil)
	assert.True(t, p.Empty)
	assert.Equal(t, JSON, p.Kind)
	assert.Empty(t, p.Text)
}

func TestRenderTruncates(t *testing.T) {
	r := NewRenderer(10)
	p := r.Render("text/plain", decoded(strings.Repeat("é", 20), "text/plain"))
	assert.True(t, p.Truncated)
	assert.True(t, strings.HasPrefix(p.Text, strings.Repeat("é", 5)+"\n"))
	assert.Contains(t, p.Text, "[truncated 30 B]")

	p = r.Render("text/plain", decoded("short", "text/plain"))
	assert.False(t, p.Truncated)
	assert.Equal(t, "short", p.Text)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "1023 B", FormatSize(1023))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "1.0 MB", FormatSize(1<<20))
}

func TestQuery(t *testing.T) {
	d := decoded(`{"items":[{"id":1},{"id":2}]}`, "application/json")

	results, err := Query(d, ".items[].id")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, results)

	results, err = Query(d, ".items[0]")
	require.NoError(t, err)
	assert.Equal(t, []string{"{\n  \"id\": 1\n}"}, results)
}

func TestQueryErrors(t *testing.T) {
	_, err := Query(decoded(`{}`, ""), ".[")
	assert.ErrorContains(t, err, "invalid jq expression")

	_, err = Query(decoded(`<html>`, ""), ".")
	assert.ErrorIs(t, err, ErrNotJSON)

	_, err = Query(nil, ".")
	assert.ErrorIs(t, err, ErrNotJSON)

	_, err = Query(decoded(`{"a":1}`, ""), `error("boom")`)
	assert.ErrorContains(t, err, "boom")
}

func TestDecodeImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, format, err := DecodeImage(buf.Bytes(), "image/png", 80, 24)
	require.NoError(t, err)
	assert.Equal(t, "PNG", format)
	assert.Equal(t, 3, img.Bounds().Dx())

	// sniffed when the MIME type is unhelpful
	_, format, err = DecodeImage(buf.Bytes(), "application/octet-stream", 80, 24)
	require.NoError(t, err)
	assert.Equal(t, "PNG", format)

	_, _, err = DecodeImage([]byte("nope"), "image/png", 80, 24)
	assert.Error(t, err)
}

func TestDecodeSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100"><rect width="200" height="100" fill="red"/></svg>`
	img, format, err := DecodeImage([]byte(svg), "image/svg+xml", 40, 40)
	require.NoError(t, err)
	assert.Equal(t, "SVG", format)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestImageRendererDisabled(t *testing.T) {
	r := NewImageRenderer(false)
	assert.False(t, r.Enabled())
	_, err := r.Render(&body.Decoded{Bytes: []byte{1}})
	assert.ErrorIs(t, err, ErrImagesDisabled)
}

func TestANSIToTview(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"foreground", "\x1b[38;2;255;0;16m▀", "[#ff0010]▀"},
		{"background", "\x1b[48;2;0;0;0m ", "[:#000000] "},
		{"combined", "\x1b[38;2;1;2;3;48;2;4;5;6m▀\x1b[0m", "[#010203:#040506]▀[-:-]"},
		{"other escapes stripped", "\x1b[1mbold\x1b[22m", "bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ANSIToTview(tt.input))
		})
	}
}
