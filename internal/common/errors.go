// Package common defines shared sentinel errors used across the capsule
// service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// ErrNotConfirmed is returned when a delete request arrives without the
	// explicit user confirmation step. No removal request is issued.
	ErrNotConfirmed = errors.New("delete not confirmed")
)
