package attachments

// Selection is the accepted-attachment state behind a capsule form's file
// picker. It owns the accepted list and only mutates it through Add,
// RemoveAt and Reset, so re-selecting the same file always goes through
// validation again.
type Selection struct {
	maxSize  int64
	maxCount int
	items    []Candidate
}

// NewSelection returns an empty selection with the given limits.
// Non-positive limits fall back to the defaults.
func NewSelection(maxSize int64, maxCount int) *Selection {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	return &Selection{maxSize: maxSize, maxCount: maxCount}
}

// Add validates the batch against the current items and keeps the survivors.
// The returned violation is ViolationNone when the whole batch was accepted.
func (s *Selection) Add(batch []Candidate) Violation {
	merged, v := Validate(s.items, batch, s.maxSize, s.maxCount)
	s.items = merged
	return v
}

// RemoveAt removes the item at position i, preserving the relative order of
// the others. It reports whether an item was removed.
func (s *Selection) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Reset clears all accepted items in one action.
func (s *Selection) Reset() {
	s.items = nil
}

// Items returns a copy of the accepted list.
func (s *Selection) Items() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of accepted items.
func (s *Selection) Len() int {
	return len(s.items)
}
