// Package codec converts HAR payloads between bytes, text and base64.
package codec

import (
	"encoding/base64"
	"fmt"
	"mime"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DecodeError reports base64 content that does not decode
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("body is not valid base64: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeBase64 encodes the UTF-8 bytes of text
func EncodeBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBase64Bytes encodes raw bytes
func EncodeBase64Bytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64ToBytes decodes standard base64. Line breaks from MIME-style
// wrapping are ignored; anything else outside the alphabet is an error.
func DecodeBase64ToBytes(s string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return decoded, nil
}

// DecodeBase64ToText decodes base64 for display and never fails: invalid
// UTF-8 is replaced and malformed base64 falls back to the input itself.
func DecodeBase64ToText(s string) string {
	decoded, err := DecodeBase64ToBytes(s)
	if err != nil {
		return s
	}
	return strings.ToValidUTF8(string(decoded), string(utf8.RuneError))
}

// BytesToText decodes body bytes for display, honoring a charset parameter
// on mimeType when one is present and known.
func BytesToText(data []byte, mimeType string) string {
	if enc := charsetEncoding(mimeType); enc != nil {
		if text, err := enc.NewDecoder().Bytes(data); err == nil {
			return strings.ToValidUTF8(string(text), string(utf8.RuneError))
		}
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// charsetEncoding returns a decoder for non-UTF-8 charsets, or nil
func charsetEncoding(mimeType string) encoding.Encoding {
	if mimeType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return nil
	}
	charset := params["charset"]
	if charset == "" {
		return nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil || enc == unicode.UTF8 {
		return nil
	}
	return enc
}

// MediaType returns the lowercased MIME type without parameters
func MediaType(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

var knownExtensions = map[string]string{
	"application/json":          "json",
	"application/ld+json":       "json",
	"application/manifest+json": "webmanifest",
	"application/javascript":    "js",
	"application/x-javascript":  "js",
	"text/javascript":           "js",
	"application/xml":           "xml",
	"text/xml":                  "xml",
	"application/xhtml+xml":     "xhtml",
	"application/pdf":           "pdf",
	"application/zip":           "zip",
	"application/gzip":          "gz",
	"application/wasm":          "wasm",
	"application/octet-stream":  "bin",
	"text/html":                 "html",
	"text/plain":                "txt",
	"text/css":                  "css",
	"text/csv":                  "csv",
	"text/markdown":             "md",
	"image/png":                 "png",
	"image/jpeg":                "jpg",
	"image/jpg":                 "jpg",
	"image/gif":                 "gif",
	"image/webp":                "webp",
	"image/svg+xml":             "svg",
	"image/x-icon":              "ico",
	"image/vnd.microsoft.icon":  "ico",
	"image/avif":                "avif",
	"audio/mpeg":                "mp3",
	"audio/mp3":                 "mp3",
	"audio/wav":                 "wav",
	"audio/ogg":                 "ogg",
	"audio/aac":                 "aac",
	"video/mp4":                 "mp4",
	"video/webm":                "webm",
	"video/ogg":                 "ogv",
	"font/woff":                 "woff",
	"font/woff2":                "woff2",
	"font/ttf":                  "ttf",
}

var unsafeExtChars = regexp.MustCompile(`[^a-z0-9]`)

// ExtensionForMime maps a MIME type to a file extension without the dot
func ExtensionForMime(mimeType string) string {
	mt := MediaType(mimeType)
	if mt == "" {
		return "bin"
	}
	if ext, ok := knownExtensions[mt]; ok {
		return ext
	}

	_, subtype, found := strings.Cut(mt, "/")
	if !found {
		return "bin"
	}
	// vendor suffixes: application/vnd.api+json -> json
	if _, suffix, ok := strings.Cut(subtype, "+"); ok && suffix != "" {
		subtype = suffix
	}
	subtype = strings.TrimPrefix(subtype, "x-")
	subtype = unsafeExtChars.ReplaceAllString(subtype, "")
	if subtype == "" {
		return "bin"
	}
	return subtype
}
