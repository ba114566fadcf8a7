// Package lifecycle derives a capsule's view-state from the wall clock and
// drives the explicit open/close actions. View-state is never persisted:
// every fresh render recomputes it from the unlock date.
package lifecycle

import (
	"errors"
	"time"
)

// State is a capsule's derived view-state.
type State int

const (
	// Locked: today is before the unlock date. No action leaves this state;
	// only a later render, once the clock has crossed the unlock date, does.
	Locked State = iota
	// UnlockedClosed: the unlock date has arrived but the capsule is not
	// currently opened for reading.
	UnlockedClosed
	// UnlockedOpen: explicitly opened by the user.
	UnlockedOpen
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case UnlockedClosed:
		return "unlocked_closed"
	case UnlockedOpen:
		return "unlocked_open"
	default:
		return "unknown"
	}
}

var (
	// ErrLocked is returned for any action attempted on a locked capsule.
	ErrLocked = errors.New("capsule is locked")
	// ErrBadTransition is returned for an action that is not valid in the
	// current state (e.g. closing an already-closed capsule).
	ErrBadTransition = errors.New("invalid state transition")
)

// dateOrdinal collapses a timestamp to a comparable calendar-day number.
func dateOrdinal(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// StateAt derives the initial state for a render: Locked while today is
// strictly before the unlock date at day granularity; the unlock day itself
// counts as unlocked. The opened flag never survives a re-render, so the
// unlocked case always starts closed.
func StateAt(openAt, now time.Time) State {
	if dateOrdinal(now) < dateOrdinal(openAt) {
		return Locked
	}
	return UnlockedClosed
}

// IsLocked is a convenience for callers that only need the boolean.
func IsLocked(openAt, now time.Time) bool {
	return StateAt(openAt, now) == Locked
}

// Machine holds the view-state of one rendered capsule.
type Machine struct {
	state State
}

// NewMachine derives the initial state from the clock.
func NewMachine(openAt, now time.Time) *Machine {
	return &Machine{state: StateAt(openAt, now)}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Open transitions UnlockedClosed → UnlockedOpen.
func (m *Machine) Open() error {
	switch m.state {
	case Locked:
		return ErrLocked
	case UnlockedOpen:
		return ErrBadTransition
	}
	m.state = UnlockedOpen
	return nil
}

// Close transitions UnlockedOpen → UnlockedClosed.
func (m *Machine) Close() error {
	switch m.state {
	case Locked:
		return ErrLocked
	case UnlockedClosed:
		return ErrBadTransition
	}
	m.state = UnlockedClosed
	return nil
}

// CanDelete reports whether the delete action is available: it is exposed in
// both unlocked states and never while locked.
func (m *Machine) CanDelete() bool {
	return m.state != Locked
}
