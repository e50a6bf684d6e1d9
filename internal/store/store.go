// Package store holds the loaded HAR session: entries, the filtered view,
// the selection and the active entry.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"

	"github.com/cnharrison/harview/internal/filter"
	"github.com/cnharrison/harview/internal/har"
)

const noActive = -1

// state is replaced wholesale on every load so readers never observe a
// half-built session.
type state struct {
	session  string
	source   string
	doc      har.Document
	byStatus map[int]*roaring.Bitmap

	criteria filter.Criteria
	filtered []int
	selected *roaring.Bitmap
	active   int
}

func newState(doc har.Document, source string) *state {
	s := &state{
		session:  uuid.NewString(),
		source:   source,
		doc:      doc,
		byStatus: make(map[int]*roaring.Bitmap),
		selected: roaring.New(),
		active:   noActive,
		filtered: make([]int, len(doc.Entries)),
	}
	for i, entry := range doc.Entries {
		s.filtered[i] = i
		bm, ok := s.byStatus[entry.Response.Status]
		if !ok {
			bm = roaring.New()
			s.byStatus[entry.Response.Status] = bm
		}
		bm.Add(uint32(i))
	}
	return s
}

// index resolves an entry ID against the loaded document
func (s *state) index(id string) (int, bool) {
	i, ok := har.ParseEntryID(id)
	if !ok || i >= len(s.doc.Entries) {
		return 0, false
	}
	return i, true
}

// Store is safe for concurrent use. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	state  *state
	logger *slog.Logger
}

// New returns an empty store
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:  newState(har.Document{}, ""),
		logger: logger,
	}
}

// Load replaces the session with doc. Criteria, selection and the active
// entry are reset and every entry is visible.
func (s *Store) Load(doc *har.Document) {
	s.load(doc, "")
}

func (s *Store) load(doc *har.Document, source string) {
	if doc == nil {
		doc = &har.Document{}
	}
	next := newState(*doc, source)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.logger.Info("har loaded",
		"session", next.session,
		"entries", len(doc.Entries),
		"creator", doc.Creator.Name,
		"source", source,
	)
}

// LoadBytes parses data and loads it. On error the current session is left
// untouched.
func (s *Store) LoadBytes(data []byte) error {
	return s.loadBytes(data, "")
}

// LoadFile reads and loads the HAR file at path
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read HAR file: %w", err)
	}
	return s.loadBytes(data, path)
}

func (s *Store) loadBytes(data []byte, source string) error {
	doc, err := har.Parse(data)
	if err != nil {
		s.logger.Warn("har load failed", "source", source, "error", err)
		return err
	}
	s.load(doc, source)
	return nil
}

// SetFilter replaces the criteria and recomputes the filtered view. The
// active entry survives even when the new criteria hide it.
func (s *Store) SetFilter(c filter.Criteria) {
	s.mu.Lock()
	st := s.state
	st.criteria = c
	st.filtered = st.apply(c)
	visible := len(st.filtered)
	s.mu.Unlock()

	s.logger.Debug("filter applied",
		"session", st.session,
		"criteria", c.Describe(),
		"visible", visible,
	)
}

// apply computes the filtered indices in load order. An exact status
// criterion narrows the candidates through the status index first.
func (st *state) apply(c filter.Criteria) []int {
	entries := st.doc.Entries

	if code, ok := c.StatusCode(); ok {
		pred := c.Compile()
		bm, found := st.byStatus[code]
		if !found {
			return []int{}
		}
		result := make([]int, 0, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			i := int(it.Next())
			if pred.Match(entries[i]) {
				result = append(result, i)
			}
		}
		return result
	}

	return filter.Apply(entries, c)
}

// Criteria returns the current filter criteria
func (s *Store) Criteria() filter.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.criteria
}

// Filtered returns the visible entries in load order
func (s *Store) Filtered() []har.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	result := make([]har.Entry, len(st.filtered))
	for i, idx := range st.filtered {
		result[i] = st.doc.Entries[idx]
	}
	return result
}

// FilteredIDs returns the IDs of the visible entries in load order
func (s *Store) FilteredIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	ids := make([]string, len(st.filtered))
	for i, idx := range st.filtered {
		ids[i] = st.doc.Entries[idx].ID
	}
	return ids
}

// VisibleLen returns the number of entries passing the filter
func (s *Store) VisibleLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.filtered)
}

// Visible returns the entry at row of the filtered view
func (s *Store) Visible(row int) (har.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if row < 0 || row >= len(st.filtered) {
		return har.Entry{}, false
	}
	return st.doc.Entries[st.filtered[row]], true
}

// Row returns the position of id in the filtered view, or -1
func (s *Store) Row(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	idx, ok := st.index(id)
	if !ok {
		return -1
	}
	for row, i := range st.filtered {
		if i == idx {
			return row
		}
	}
	return -1
}

// Len returns the number of loaded entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.doc.Entries)
}

// Entry returns the loaded entry with id
func (s *Store) Entry(id string) (har.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.state.index(id)
	if !ok {
		return har.Entry{}, unknownEntry(id)
	}
	return s.state.doc.Entries[idx], nil
}

// Document returns the loaded document. Entries are shared and must not be
// modified.
func (s *Store) Document() har.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.doc
}

// Session returns the identifier of the current load
func (s *Store) Session() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.session
}

// Source returns the path the current document was loaded from, if any
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.source
}
