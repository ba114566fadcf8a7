// Package models defines server-side data models persisted in the database.
package models

import "time"

// Capsule is a persisted time capsule: a titled message with an unlock date
// and up to three attachments.
type Capsule struct {
	// ID is the store-assigned identifier, immutable once assigned.
	ID string
	// Title and Message are non-empty after trimming.
	Title   string
	Message string
	// OpenAt is the unlock date, day granularity. The time-of-day component
	// is ignored everywhere.
	OpenAt time.Time
	// Attachments is the canonical, normalized attachment list (0..3 items).
	Attachments []Attachment
	// CreatedAt is assigned exactly once by the store at creation.
	CreatedAt time.Time
}
