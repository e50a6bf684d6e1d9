package har

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadFile reads and parses a HAR file from the given path
func LoadFile(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading HAR file: %w", err)
	}
	return Parse(data)
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse validates the document shape and extracts its entries.
// Only log.entries is required; every nested field is optional and a
// field of the wrong type reads as its zero value. A leading UTF-8 byte
// order mark is ignored.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, &FormatError{Reason: "malformed JSON"}
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}
	if err := validateShape(value); err != nil {
		return nil, &FormatError{Reason: "missing log.entries array", Err: err}
	}

	root := gjson.ParseBytes(data)
	log := root.Get("log")

	raw := log.Get("entries").Array()
	doc := &Document{
		Version: log.Get("version").String(),
		Creator: Creator{
			Name:    log.Get("creator.name").String(),
			Version: log.Get("creator.version").String(),
		},
		Entries: make([]Entry, 0, len(raw)),
	}
	for i, item := range raw {
		doc.Entries = append(doc.Entries, entryFromJSON(item, i))
	}
	return doc, nil
}

func entryFromJSON(r gjson.Result, index int) Entry {
	entry := Entry{
		ID:              EntryID(index),
		Index:           index,
		StartedDateTime: stringField(r.Get("startedDateTime")),
		Time:            r.Get("time").Float(),
		ServerIP:        stringField(r.Get("serverIPAddress")),
		Raw:             []byte(r.Raw),
	}

	req := r.Get("request")
	entry.Request = Request{
		Method:      stringField(req.Get("method")),
		URL:         stringField(req.Get("url")),
		HTTPVersion: stringField(req.Get("httpVersion")),
		Headers:     headersFromJSON(req.Get("headers")),
		Cookies:     cookiesFromJSON(req.Get("cookies")),
		BodySize:    sizeField(req.Get("bodySize")),
	}
	if pd := req.Get("postData"); pd.IsObject() {
		text := pd.Get("text")
		entry.Request.PostData = &PostData{
			MimeType: stringField(pd.Get("mimeType")),
			Text:     stringField(text),
			Encoding: stringField(pd.Get("encoding")),
			HasText:  text.Type == gjson.String,
		}
	}

	resp := r.Get("response")
	content := resp.Get("content")
	text := content.Get("text")
	entry.Response = Response{
		Status:      int(resp.Get("status").Int()),
		StatusText:  stringField(resp.Get("statusText")),
		HTTPVersion: stringField(resp.Get("httpVersion")),
		Headers:     headersFromJSON(resp.Get("headers")),
		Cookies:     cookiesFromJSON(resp.Get("cookies")),
		BodySize:    sizeField(resp.Get("bodySize")),
		Content: Content{
			Size:     content.Get("size").Int(),
			MimeType: stringField(content.Get("mimeType")),
			Text:     stringField(text),
			Encoding: stringField(content.Get("encoding")),
			HasText:  text.Type == gjson.String,
		},
	}

	t := r.Get("timings")
	entry.Timings = Timings{
		Blocked: t.Get("blocked").Float(),
		DNS:     t.Get("dns").Float(),
		Connect: t.Get("connect").Float(),
		Send:    t.Get("send").Float(),
		Wait:    t.Get("wait").Float(),
		Receive: t.Get("receive").Float(),
		SSL:     t.Get("ssl").Float(),
	}
	return entry
}

// stringField returns the value only when it is a JSON string
func stringField(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// sizeField returns -1 for missing or non-numeric sizes
func sizeField(r gjson.Result) int64 {
	if r.Type != gjson.Number {
		return -1
	}
	return r.Int()
}

func headersFromJSON(r gjson.Result) []Header {
	if !r.IsArray() {
		return nil
	}
	var headers []Header
	r.ForEach(func(_, h gjson.Result) bool {
		if h.IsObject() {
			headers = append(headers, Header{
				Name:  stringField(h.Get("name")),
				Value: stringField(h.Get("value")),
			})
		}
		return true
	})
	return headers
}

func cookiesFromJSON(r gjson.Result) []Cookie {
	if !r.IsArray() {
		return nil
	}
	var cookies []Cookie
	r.ForEach(func(_, c gjson.Result) bool {
		if c.IsObject() {
			cookies = append(cookies, Cookie{
				Name:     stringField(c.Get("name")),
				Value:    stringField(c.Get("value")),
				Domain:   stringField(c.Get("domain")),
				Path:     stringField(c.Get("path")),
				Secure:   c.Get("secure").Bool(),
				HTTPOnly: c.Get("httpOnly").Bool(),
			})
		}
		return true
	})
	return cookies
}
