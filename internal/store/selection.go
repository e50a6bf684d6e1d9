package store

import (
	"github.com/cnharrison/harview/internal/har"
)

// ToggleSelect flips the selection of id. Unknown IDs are ignored.
func (s *Store) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	idx, ok := st.index(id)
	if !ok {
		s.logger.Debug("toggle select ignored", "session", st.session, "entry", id)
		return
	}
	if !st.selected.CheckedAdd(uint32(idx)) {
		st.selected.Remove(uint32(idx))
	}
}

// SelectAllVisible adds every visible entry to the selection, or removes
// them when on is false. Hidden entries keep their selection state.
func (s *Store) SelectAllVisible(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	for _, idx := range st.filtered {
		if on {
			st.selected.Add(uint32(idx))
		} else {
			st.selected.Remove(uint32(idx))
		}
	}
}

// ClearSelection empties the selection
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.selected.Clear()
}

// IsSelected reports whether id is selected
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.state.index(id)
	return ok && s.state.selected.Contains(uint32(idx))
}

// SelectedCount returns the number of selected entries, visible or not
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.state.selected.GetCardinality())
}

// Selected returns the selected entries in load order
func (s *Store) Selected() []har.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	result := make([]har.Entry, 0, st.selected.GetCardinality())
	it := st.selected.Iterator()
	for it.HasNext() {
		result = append(result, st.doc.Entries[it.Next()])
	}
	return result
}

// SetActive makes id the entry under inspection
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.state.index(id)
	if !ok {
		return unknownEntry(id)
	}
	s.state.active = idx
	return nil
}

// ClearActive leaves no entry under inspection
func (s *Store) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.active = noActive
}

// Active returns the entry under inspection, which may be hidden by the filter
func (s *Store) Active() (har.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.active == noActive {
		return har.Entry{}, false
	}
	return st.doc.Entries[st.active], true
}

// ActiveVisible reports whether the active entry passes the current filter
func (s *Store) ActiveVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.active == noActive {
		return false
	}
	for _, idx := range st.filtered {
		if idx == st.active {
			return true
		}
	}
	return false
}
