package listview

import (
	"sync"

	"github.com/dmitrijs2005/timecapsule/internal/server/models"
)

// View is the owned in-memory capsule collection behind a list rendering.
// It is mutated only through defined operations: Replace on fetch,
// RemoveByID on confirmed delete success, SetMode on sort selection.
type View struct {
	mu       sync.Mutex
	mode     Mode
	capsules []*models.Capsule
}

// NewView returns an empty view using the given sort mode
// (DefaultMode when empty).
func NewView(mode Mode) *View {
	if mode == "" {
		mode = DefaultMode
	}
	return &View{mode: mode}
}

// Replace swaps the whole collection for a freshly fetched one.
func (v *View) Replace(capsules []*models.Capsule) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.capsules = make([]*models.Capsule, len(capsules))
	copy(v.capsules, capsules)
}

// RemoveByID evicts exactly the capsule with the given id, preserving the
// order of the others. It reports whether a capsule was removed. Callers
// only invoke this after the remote delete has been confirmed.
func (v *View) RemoveByID(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, c := range v.capsules {
		if c.ID == id {
			v.capsules = append(v.capsules[:i], v.capsules[i+1:]...)
			return true
		}
	}
	return false
}

// SetMode switches the sort mode for subsequent Capsules calls.
func (v *View) SetMode(mode Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

// Mode returns the current sort mode.
func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Len returns the number of capsules currently held.
func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.capsules)
}

// Capsules returns the collection ordered by the current mode.
func (v *View) Capsules() []*models.Capsule {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Sorted(v.capsules, v.mode)
}
