package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cnharrison/harview/internal/filter"
	"github.com/cnharrison/harview/internal/har"
)

// DefaultCreator names harview in the creator field of written subsets
var DefaultCreator = har.Creator{Name: "harview", Version: "1.0"}

type subsetLog struct {
	Version string            `json:"version"`
	Creator har.Creator       `json:"creator"`
	Entries []json.RawMessage `json:"entries"`
}

type subsetDocument struct {
	Log subsetLog `json:"log"`
}

// HARSubset writes a HAR document holding entries, keeping each entry's
// original JSON. Version and creator are carried over from doc when set.
func HARSubset(doc har.Document, entries []har.Entry) ([]byte, error) {
	out := subsetDocument{Log: subsetLog{
		Version: doc.Version,
		Creator: doc.Creator,
		Entries: make([]json.RawMessage, 0, len(entries)),
	}}
	if out.Log.Version == "" {
		out.Log.Version = "1.2"
	}
	if out.Log.Creator.Name == "" {
		out.Log.Creator = DefaultCreator
	}

	for _, entry := range entries {
		raw := entry.Raw
		if len(raw) == 0 {
			var err error
			if raw, err = json.Marshal(entry); err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", entry.ID, err)
			}
		}
		out.Log.Entries = append(out.Log.Entries, json.RawMessage(raw))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode HAR: %w", err)
	}
	return data, nil
}

var (
	unsafeNameChars = regexp.MustCompile(`[^\w\-.]+`)
	repeatedUnders  = regexp.MustCompile(`_+`)
)

// SubsetFilename builds a descriptive name for a saved subset, e.g.
// capture_filtered_fetch_status_404_20240501_120000.har
func SubsetFilename(base string, c filter.Criteria, now time.Time) string {
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "har"
	}
	timestamp := now.Format("20060102_150405")

	var parts []string
	for _, label := range c.Describe() {
		label = strings.ReplaceAll(label, ":", "_")
		label = unsafeNameChars.ReplaceAllString(label, "_")
		if len(label) > 27 {
			label = label[:27]
		}
		parts = append(parts, label)
	}

	var name string
	if len(parts) > 0 {
		name = fmt.Sprintf("%s_filtered_%s_%s.har", base, strings.Join(parts, "_"), timestamp)
	} else {
		name = fmt.Sprintf("%s_all_entries_%s.har", base, timestamp)
	}
	return repeatedUnders.ReplaceAllString(name, "_")
}

// SelectionFilename names a saved selection of count entries
func SelectionFilename(base string, count int, now time.Time) string {
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "har"
	}
	return fmt.Sprintf("%s_selected_%d_%s.har", base, count, now.Format("20060102_150405"))
}
