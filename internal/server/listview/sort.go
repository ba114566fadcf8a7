// Package listview owns the rendered capsule collection: stable sorting by
// unlock or creation date, wholesale replacement on fetch, and removal by id
// on confirmed delete.
package listview

import (
	"sort"

	"github.com/dmitrijs2005/timecapsule/internal/server/models"
)

// Mode selects the list ordering. The string values double as HTTP query
// parameter values.
type Mode string

const (
	OpenAtAsc     Mode = "openAt_asc"
	OpenAtDesc    Mode = "openAt_desc"
	CreatedAtDesc Mode = "createdAt_desc"
	CreatedAtAsc  Mode = "createdAt_asc"
)

// DefaultMode matches the persistence-layer order hint.
const DefaultMode = CreatedAtDesc

// ParseMode maps a query value to a Mode; unknown values report false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case OpenAtAsc, OpenAtDesc, CreatedAtDesc, CreatedAtAsc:
		return Mode(s), true
	}
	return "", false
}

// Sorted returns a new slice ordered by mode. The sort is stable, so
// capsules comparing equal keep their input order; the input slice is never
// mutated. An unknown mode returns the copy unsorted.
func Sorted(capsules []*models.Capsule, mode Mode) []*models.Capsule {
	out := make([]*models.Capsule, len(capsules))
	copy(out, capsules)

	var less func(i, j int) bool
	switch mode {
	case OpenAtAsc:
		less = func(i, j int) bool { return out[i].OpenAt.Before(out[j].OpenAt) }
	case OpenAtDesc:
		less = func(i, j int) bool { return out[j].OpenAt.Before(out[i].OpenAt) }
	case CreatedAtAsc:
		less = func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) }
	case CreatedAtDesc:
		less = func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, less)
	return out
}
