// Package export assembles downloadable artifacts from HAR entries.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
	"github.com/cnharrison/harview/internal/har"
)

// DefaultMimeType is used for bodies that declare no MIME type
const DefaultMimeType = "application/octet-stream"

// Artifact is a body ready to be written to disk
type Artifact struct {
	Bytes    []byte
	MimeType string
	Filename string
}

// Build assembles the body for target of entry. It returns nil, nil when
// there is no body to export and a *codec.DecodeError when the body does not
// decode.
func Build(entry har.Entry, target body.Target) (*Artifact, error) {
	d, err := body.Resolve(body.Record(entry, target))
	if err != nil {
		return nil, fmt.Errorf("%s body of %s: %w", target, entry.ID, err)
	}
	return FromDecoded(entry, target, d), nil
}

// FromDecoded assembles an artifact from an already decoded body
func FromDecoded(entry har.Entry, target body.Target, d *body.Decoded) *Artifact {
	if d == nil {
		return nil
	}
	mimeType := d.MimeType
	if strings.TrimSpace(mimeType) == "" {
		mimeType = DefaultMimeType
	}
	return &Artifact{
		Bytes:    d.Bytes,
		MimeType: mimeType,
		Filename: Filename(entry.Request.URL, mimeType, target),
	}
}

// Filename derives a download name from the last path segment of rawURL,
// falling back to har-<target>.<ext> for the MIME type.
func Filename(rawURL, mimeType string, target body.Target) string {
	if name := lastPathSegment(rawURL); name != "" {
		return name
	}
	return fmt.Sprintf("har-%s.%s", target, codec.ExtensionForMime(mimeType))
}

var segmentReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return ""
	}

	var last string
	for _, seg := range strings.Split(u.EscapedPath(), "/") {
		if seg != "" {
			last = seg
		}
	}
	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}
	last = strings.TrimSpace(segmentReplacer.Replace(last))
	if last == "." || last == ".." {
		return ""
	}
	return last
}
