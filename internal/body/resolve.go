// Package body turns HAR body records into decoded payloads.
package body

import (
	"fmt"
	"strings"

	"github.com/cnharrison/harview/internal/codec"
	"github.com/cnharrison/harview/internal/har"
)

// Target selects which side of an exchange a body comes from
type Target int

const (
	Response Target = iota
	Request
)

func (t Target) String() string {
	if t == Request {
		return "request"
	}
	return "response"
}

// ParseTarget accepts "request"/"req" and "response"/"res"/"resp"
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "response", "res", "resp":
		return Response, nil
	case "request", "req":
		return Request, nil
	}
	return Response, fmt.Errorf("unknown body target %q (want request or response)", s)
}

// Record returns the body record of entry for target
func Record(entry har.Entry, target Target) har.BodyRecord {
	if target == Request {
		return entry.Request.PostData.Body()
	}
	return entry.Response.Content.Body()
}

// Decoded is a body payload ready for preview or export
type Decoded struct {
	Bytes    []byte
	Text     string
	MimeType string
	Encoding string
}

// Size returns the decoded byte count
func (d *Decoded) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Bytes)
}

// Resolve decodes rec. It returns nil, nil when the record carries no text.
// A base64 record that does not decode returns a *codec.DecodeError.
func Resolve(rec har.BodyRecord) (*Decoded, error) {
	if !rec.HasText {
		return nil, nil
	}

	if strings.EqualFold(rec.Encoding, "base64") {
		data, err := codec.DecodeBase64ToBytes(rec.Text)
		if err != nil {
			return nil, err
		}
		return &Decoded{
			Bytes:    data,
			Text:     codec.BytesToText(data, rec.MimeType),
			MimeType: rec.MimeType,
			Encoding: rec.Encoding,
		}, nil
	}

	return &Decoded{
		Bytes:    []byte(rec.Text),
		Text:     rec.Text,
		MimeType: rec.MimeType,
		Encoding: rec.Encoding,
	}, nil
}
