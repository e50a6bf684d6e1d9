// Package filter decides which HAR entries are visible.
package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cnharrison/harview/internal/har"
)

// AllTypes disables the request type filter
const AllTypes = "all"

// Criteria holds the user's filter inputs. All non-empty criteria must match.
type Criteria struct {
	// Query is a free-text substring matched against method, URL, status and MIME type
	Query string
	// Status must equal the decimal response status exactly
	Status string
	// Mime is a substring of the response content MIME type
	Mime       string
	ErrorsOnly bool
	// Type is a request class from har.RequestTypes; "" and "all" match everything
	Type string
}

// IsEmpty reports whether c matches every entry
func (c Criteria) IsEmpty() bool {
	p := c.Compile()
	return p.query == "" && p.status == "" && p.mime == "" && !p.errorsOnly && p.typ == ""
}

// StatusCode returns the status criterion as a number when it is a plain
// decimal that a response status could equal.
func (c Criteria) StatusCode() (int, bool) {
	s := strings.TrimSpace(c.Status)
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

// Describe lists the active criteria as short labels, e.g. "status:404"
func (c Criteria) Describe() []string {
	p := c.Compile()
	var parts []string
	if p.typ != "" {
		parts = append(parts, p.typ)
	}
	if p.query != "" {
		parts = append(parts, "search:"+p.query)
	}
	if p.status != "" {
		parts = append(parts, "status:"+p.status)
	}
	if p.mime != "" {
		parts = append(parts, "mime:"+p.mime)
	}
	if p.errorsOnly {
		parts = append(parts, "errors")
	}
	return parts
}

// Predicate is a compiled Criteria
type Predicate struct {
	query      string
	status     string
	mime       string
	typ        string
	errorsOnly bool
}

// Compile normalizes c once so it can be matched against many entries
func (c Criteria) Compile() Predicate {
	p := Predicate{
		query:      strings.ToLower(strings.TrimSpace(c.Query)),
		status:     strings.TrimSpace(c.Status),
		mime:       strings.ToLower(strings.TrimSpace(c.Mime)),
		typ:        strings.ToLower(strings.TrimSpace(c.Type)),
		errorsOnly: c.ErrorsOnly,
	}
	if p.typ == AllTypes {
		p.typ = ""
	}
	return p
}

// Match reports whether entry passes the predicate
func (p Predicate) Match(entry har.Entry) bool {
	status := strconv.Itoa(entry.Response.Status)

	if p.status != "" && status != p.status {
		return false
	}
	if p.errorsOnly && !IsError(entry.Response.Status) {
		return false
	}
	if p.mime != "" && !strings.Contains(strings.ToLower(entry.Response.Content.MimeType), p.mime) {
		return false
	}
	if p.query != "" && !strings.Contains(Haystack(entry), p.query) {
		return false
	}
	if p.typ != "" && har.RequestType(entry) != p.typ {
		return false
	}
	return true
}

// Haystack is the lowercased text the free-text query searches. A missing
// status contributes nothing, so "0" never matches an unanswered request.
func Haystack(entry har.Entry) string {
	status := ""
	if entry.Response.Status != 0 {
		status = strconv.Itoa(entry.Response.Status)
	}
	return strings.ToLower(entry.Request.Method + " " + entry.Request.URL + " " +
		status + " " + entry.Response.Content.MimeType)
}

// IsError reports whether a status counts as failed. Status 0 means the
// request never completed.
func IsError(status int) bool {
	return status >= 400 || status == 0
}

// Apply returns the indices of entries matching c, in load order
func Apply(entries []har.Entry, c Criteria) []int {
	p := c.Compile()
	result := make([]int, 0, len(entries))
	if c.IsEmpty() {
		for i := range entries {
			result = append(result, i)
		}
		return result
	}
	for i, entry := range entries {
		if p.Match(entry) {
			result = append(result, i)
		}
	}
	return result
}

// TypeFilters returns the selectable type filters, "all" first
func TypeFilters() []string {
	return append([]string{AllTypes}, har.RequestTypes...)
}

// CycleType returns the type filter step positions away from current,
// wrapping at either end.
func CycleType(current string, step int) string {
	types := TypeFilters()
	if current == "" {
		current = AllTypes
	}
	i := slices.Index(types, current)
	if i < 0 {
		i = 0
	}
	n := len(types)
	return types[((i+step)%n+n)%n]
}
