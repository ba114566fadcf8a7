package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStateAt(t *testing.T) {
	tests := []struct {
		name   string
		openAt time.Time
		now    time.Time
		want   State
	}{
		{"far future is locked", date(2099, 1, 1), date(2025, 6, 1), Locked},
		{"yesterday is unlocked", date(2025, 5, 31), date(2025, 6, 1), UnlockedClosed},
		{"same day counts as unlocked", date(2025, 6, 1), date(2025, 6, 1), UnlockedClosed},
		{"same day later clock still unlocked", date(2025, 6, 1), time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC), UnlockedClosed},
		{"tomorrow is locked", date(2025, 6, 2), time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC), Locked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StateAt(tc.openAt, tc.now))
		})
	}
}

func TestIsLocked(t *testing.T) {
	assert.True(t, IsLocked(date(2099, 1, 1), date(2025, 6, 1)))
	assert.False(t, IsLocked(date(2020, 1, 1), date(2025, 6, 1)))
}

func TestMachine_OpenClose(t *testing.T) {
	m := NewMachine(date(2020, 1, 1), date(2025, 6, 1))
	require.Equal(t, UnlockedClosed, m.State())

	require.NoError(t, m.Open())
	assert.Equal(t, UnlockedOpen, m.State())

	// double open is not a valid transition
	assert.ErrorIs(t, m.Open(), ErrBadTransition)

	require.NoError(t, m.Close())
	assert.Equal(t, UnlockedClosed, m.State())

	assert.ErrorIs(t, m.Close(), ErrBadTransition)
}

func TestMachine_LockedRefusesEverything(t *testing.T) {
	m := NewMachine(date(2099, 1, 1), date(2025, 6, 1))
	require.Equal(t, Locked, m.State())

	assert.ErrorIs(t, m.Open(), ErrLocked)
	assert.ErrorIs(t, m.Close(), ErrLocked)
	assert.False(t, m.CanDelete())
}

func TestMachine_CanDeleteWhenUnlocked(t *testing.T) {
	m := NewMachine(date(2020, 1, 1), date(2025, 6, 1))
	assert.True(t, m.CanDelete())

	require.NoError(t, m.Open())
	assert.True(t, m.CanDelete())
}

func TestMachine_FreshRenderResetsOpened(t *testing.T) {
	openAt := date(2020, 1, 1)
	now := date(2025, 6, 1)

	m := NewMachine(openAt, now)
	require.NoError(t, m.Open())
	require.Equal(t, UnlockedOpen, m.State())

	// a fresh render derives state from the clock again: opened never survives
	m2 := NewMachine(openAt, now)
	assert.Equal(t, UnlockedClosed, m2.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "locked", Locked.String())
	assert.Equal(t, "unlocked_closed", UnlockedClosed.String())
	assert.Equal(t, "unlocked_open", UnlockedOpen.String())
}
