package har

import (
	"net"
	"net/url"
	"strings"
)

// RequestTypes lists the request classes produced by RequestType, in display order
var RequestTypes = []string{"fetch", "doc", "css", "js", "img", "media", "manifest", "ws", "wasm", "other"}

// HeaderValue returns the first header value matching name, case-insensitively
func HeaderValue(headers []Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ExtractIP returns the host of urlStr when it is a literal IP address
func ExtractIP(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return host
	}
	return ""
}

// RequestType classifies an entry the way browser devtools group requests
func RequestType(entry Entry) string {
	u, err := url.Parse(entry.Request.URL)
	if err != nil {
		return "other"
	}

	if u.Scheme == "ws" || u.Scheme == "wss" {
		return "ws"
	}

	contentType := strings.ToLower(entry.Response.Content.MimeType)
	if contentType == "" {
		contentType = strings.ToLower(HeaderValue(entry.Response.Headers, "content-type"))
	}
	switch {
	case contentType == "":
	case strings.Contains(contentType, "text/html"):
		return "doc"
	case strings.Contains(contentType, "text/css"):
		return "css"
	case strings.Contains(contentType, "javascript") || strings.Contains(contentType, "ecmascript"):
		return "js"
	case strings.HasPrefix(contentType, "image/"):
		return "img"
	case strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/"):
		return "media"
	case strings.Contains(contentType, "manifest"):
		return "manifest"
	case strings.Contains(contentType, "application/wasm"):
		return "wasm"
	case strings.Contains(contentType, "json") || strings.Contains(contentType, "xml"):
		return "fetch"
	}

	path := strings.ToLower(u.Path)
	switch {
	case hasAnySuffix(path, ".html", ".htm"):
		return "doc"
	case strings.HasSuffix(path, ".css"):
		return "css"
	case hasAnySuffix(path, ".js", ".mjs"):
		return "js"
	case hasAnySuffix(path, ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico"):
		return "img"
	case hasAnySuffix(path, ".mp4", ".webm", ".ogg", ".mp3", ".wav", ".flac"):
		return "media"
	case strings.HasSuffix(path, ".wasm"):
		return "wasm"
	case hasAnySuffix(path, ".manifest", ".webmanifest"):
		return "manifest"
	}

	if strings.EqualFold(HeaderValue(entry.Request.Headers, "x-requested-with"), "xmlhttprequest") {
		return "fetch"
	}
	accept := strings.ToLower(HeaderValue(entry.Request.Headers, "accept"))
	if strings.Contains(accept, "application/json") || strings.Contains(accept, "application/xml") {
		return "fetch"
	}

	if path == "/" || path == "" {
		return "doc"
	}
	if strings.Contains(path, "/api/") || strings.Contains(path, "/rest/") || strings.Contains(path, "/graphql") {
		return "fetch"
	}
	return "other"
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
