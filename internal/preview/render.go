package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-xmlfmt/xmlfmt"
	"github.com/yosssi/gohtml"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
)

// DefaultMaxBytes caps preview text when no limit is configured
const DefaultMaxBytes = 1 << 20

// Preview is the displayable form of a body
type Preview struct {
	Kind Kind
	Text string
	// Degraded is set when the body did not parse as its declared kind
	// and was shown as plain text instead.
	Degraded  bool
	Truncated bool
	Empty     bool
}

// Renderer renders bodies with a size limit
type Renderer struct {
	MaxBytes int
}

// NewRenderer returns a renderer truncating text beyond maxBytes
func NewRenderer(maxBytes int) *Renderer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Renderer{MaxBytes: maxBytes}
}

// Render renders d with the default size limit
func Render(mimeType string, d *body.Decoded) Preview {
	return NewRenderer(DefaultMaxBytes).Render(mimeType, d)
}

// Render renders d as the kind mimeType classifies to. A nil body yields an
// empty preview.
func (r *Renderer) Render(mimeType string, d *body.Decoded) Preview {
	kind := Classify(mimeType)
	if d == nil {
		return Preview{Kind: kind, Empty: true}
	}

	p := Preview{Kind: kind}
	switch {
	case kind.IsMedia():
		p.Text = MediaSummary(kind, mimeType, len(d.Bytes))
		return p
	case kind == JSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(strings.TrimSpace(d.Text)), "", "  "); err != nil {
			p.Kind = PlainText
			p.Degraded = true
			p.Text = d.Text
		} else {
			p.Text = buf.String()
		}
	default:
		p.Text = formatMarkup(mimeType, d.Text)
	}

	p.Text, p.Truncated = truncate(p.Text, r.maxBytes())
	return p
}

func (r *Renderer) maxBytes() int {
	if r == nil || r.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return r.MaxBytes
}

// formatMarkup reindents HTML and XML bodies; other text is returned as is
func formatMarkup(mimeType, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	mt := codec.MediaType(mimeType)
	switch {
	case strings.Contains(mt, "html"):
		return gohtml.Format(text)
	case strings.Contains(mt, "xml"):
		out := xmlfmt.FormatXML(text, "", "  ")
		out = strings.ReplaceAll(out, "\r\n", "\n")
		return strings.TrimLeft(out, "\n")
	}
	return text
}

// MediaSummary describes a media body in one line
func MediaSummary(kind Kind, mimeType string, size int) string {
	if mimeType == "" {
		mimeType = "unknown type"
	}
	return fmt.Sprintf("%s body (%s, %s)", kind, mimeType, FormatSize(size))
}

// FormatSize renders a byte count for humans
func FormatSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func truncate(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + fmt.Sprintf("\n... [truncated %s]", FormatSize(len(text)-cut)), true
}
