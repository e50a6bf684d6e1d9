// Package preview classifies decoded bodies and renders them for display.
package preview

import "strings"

// Kind is the preview category of a body
type Kind int

const (
	PlainText Kind = iota
	JSON
	Image
	Audio
	Video
)

func (k Kind) String() string {
	switch k {
	case JSON:
		return "json"
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return "text"
	}
}

// IsMedia reports whether k is rendered as a media summary rather than text
func (k Kind) IsMedia() bool {
	return k == Image || k == Audio || k == Video
}

// Classify picks the preview kind for a MIME type. Rules apply in order:
// image/, audio/, video/ prefixes, then anything mentioning json.
func Classify(mimeType string) Kind {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return Image
	case strings.HasPrefix(mt, "audio/"):
		return Audio
	case strings.HasPrefix(mt, "video/"):
		return Video
	case strings.Contains(mt, "json"):
		return JSON
	}
	return PlainText
}
