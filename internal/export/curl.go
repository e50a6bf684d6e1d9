package export

import (
	"strings"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/har"
)

// skipped when replaying; curl derives them itself
var curlSkipHeaders = map[string]bool{
	"host":           true,
	"content-length": true,
}

// CurlCommand renders entry as a curl invocation. Base64 request bodies are
// decoded; binary ones are passed with --data-binary.
func CurlCommand(entry har.Entry) string {
	var cmd strings.Builder
	cmd.WriteString("curl -X ")
	cmd.WriteString(shellQuote(entry.Request.DisplayMethod()))
	cmd.WriteString(" ")
	cmd.WriteString(shellQuote(entry.Request.URL))

	for _, header := range entry.Request.Headers {
		name := strings.ToLower(header.Name)
		if curlSkipHeaders[name] || strings.HasPrefix(name, ":") {
			continue
		}
		cmd.WriteString(" -H ")
		cmd.WriteString(shellQuote(header.Name + ": " + header.Value))
	}

	if d, err := body.Resolve(entry.Request.PostData.Body()); err == nil && d != nil && len(d.Bytes) > 0 {
		cmd.WriteString(" --data-binary ")
		cmd.WriteString(shellQuote(d.Text))
	}
	return cmd.String()
}

// shellQuote wraps s in single quotes for POSIX shells
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
