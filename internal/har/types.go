package har

import "fmt"

// DefaultMethod is shown for entries whose request carries no method
const DefaultMethod = "UNKNOWN"

// Header represents an HTTP header in a HAR file
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie represents an HTTP cookie in a HAR file
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain,omitempty"`
	Path     string `json:"path,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
}

// BodyRecord is the common shape of request postData and response content.
// HasText is false when the HAR carried no text or a non-string text.
type BodyRecord struct {
	MimeType string
	Text     string
	Encoding string
	HasText  bool
}

// PostData represents POST data in a HAR file
type PostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	HasText  bool   `json:"-"`
}

// Body returns the post data as a body record
func (p *PostData) Body() BodyRecord {
	if p == nil {
		return BodyRecord{}
	}
	return BodyRecord{MimeType: p.MimeType, Text: p.Text, Encoding: p.Encoding, HasText: p.HasText}
}

// Request represents an HTTP request in a HAR file
type Request struct {
	Method      string    `json:"method"`
	URL         string    `json:"url"`
	HTTPVersion string    `json:"httpVersion"`
	Headers     []Header  `json:"headers"`
	Cookies     []Cookie  `json:"cookies"`
	PostData    *PostData `json:"postData,omitempty"`
	BodySize    int64     `json:"bodySize"`
}

// DisplayMethod returns the request method or DefaultMethod when it is missing
func (r Request) DisplayMethod() string {
	if r.Method == "" {
		return DefaultMethod
	}
	return r.Method
}

// Content represents response content in a HAR file
type Content struct {
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	HasText  bool   `json:"-"`
}

// Body returns the content as a body record
func (c Content) Body() BodyRecord {
	return BodyRecord{MimeType: c.MimeType, Text: c.Text, Encoding: c.Encoding, HasText: c.HasText}
}

// Response represents an HTTP response in a HAR file
type Response struct {
	Status      int      `json:"status"`
	StatusText  string   `json:"statusText"`
	HTTPVersion string   `json:"httpVersion"`
	Headers     []Header `json:"headers"`
	Cookies     []Cookie `json:"cookies"`
	Content     Content  `json:"content"`
	BodySize    int64    `json:"bodySize"`
}

// Timings represents timing information in a HAR file
type Timings struct {
	Blocked float64 `json:"blocked"`
	DNS     float64 `json:"dns"`
	Connect float64 `json:"connect"`
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
	SSL     float64 `json:"ssl"`
}

// Entry represents a single HTTP transaction in a HAR file.
// ID and Index are assigned at load time; Raw keeps the original JSON.
type Entry struct {
	ID              string   `json:"-"`
	Index           int      `json:"-"`
	StartedDateTime string   `json:"startedDateTime"`
	Time            float64  `json:"time"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
	Timings         Timings  `json:"timings"`
	ServerIP        string   `json:"serverIPAddress,omitempty"`
	Raw             []byte   `json:"-"`
}

// Creator identifies the tool that produced the HAR file
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Document is a parsed HAR file
type Document struct {
	Version string
	Creator Creator
	Entries []Entry
}

// EntryID returns the synthetic identifier for the entry at index
func EntryID(index int) string {
	return fmt.Sprintf("entry-%d", index)
}

// ParseEntryID returns the index encoded in an entry identifier
func ParseEntryID(id string) (int, bool) {
	var index int
	if _, err := fmt.Sscanf(id, "entry-%d", &index); err != nil || index < 0 {
		return 0, false
	}
	if EntryID(index) != id {
		return 0, false
	}
	return index, true
}
