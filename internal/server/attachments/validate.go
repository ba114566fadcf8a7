// Package attachments implements the capsule attachment pipeline pieces that
// run before and after object storage: candidate validation, the selection
// controller backing the picker, storage-safe filename rewriting, and
// normalization of heterogeneous persisted attachment shapes.
package attachments

import "strings"

// Candidate is a file offered for attachment. It exists only during
// submission; nothing here is persisted.
type Candidate struct {
	// Name is the original display name, arbitrary characters allowed.
	Name string
	// MediaType is the declared media type (e.g. "image/png"). It is never
	// re-inspected from content.
	MediaType string
	// Size is the declared byte size.
	Size int64
	// Data is the file content.
	Data []byte
}

// Validation limits. Config may override both.
const (
	DefaultMaxSize  = 10 << 20
	DefaultMaxCount = 3
)

// Violation identifies which validation rule a candidate batch tripped.
// When several rules trip at once, only the highest-precedence one is
// reported: type before size before count.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnsupportedType
	ViolationTooLarge
	ViolationTooMany
)

// Message returns the user-facing text for the violation.
func (v Violation) Message() string {
	switch v {
	case ViolationUnsupportedType:
		return "unsupported file type"
	case ViolationTooLarge:
		return "file too large"
	case ViolationTooMany:
		return "too many files"
	default:
		return ""
	}
}

func (v Violation) String() string {
	switch v {
	case ViolationNone:
		return "none"
	case ViolationUnsupportedType:
		return "unsupported_type"
	case ViolationTooLarge:
		return "too_large"
	case ViolationTooMany:
		return "too_many"
	default:
		return "unknown"
	}
}

// SupportedType reports whether the declared media type is accepted:
// images and audio only.
func SupportedType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/") || strings.HasPrefix(mediaType, "audio/")
}

// Validate filters a candidate batch against the already-accepted set.
//
// Rules run in order: unsupported media types are rejected, then oversized
// files, then the merged list (existing first, batch in append order) is
// truncated to maxCount. Rejection is non-fatal: surviving candidates are
// kept even when a violation is reported. All rules are evaluated against
// the full batch; the returned violation is the highest-precedence one.
//
// The returned slice never exceeds maxCount.
func Validate(existing, batch []Candidate, maxSize int64, maxCount int) ([]Candidate, Violation) {
	var typeRejected, sizeRejected, truncated bool

	kept := make([]Candidate, 0, len(batch))
	for _, c := range batch {
		if !SupportedType(c.MediaType) {
			typeRejected = true
			continue
		}
		if c.Size > maxSize {
			sizeRejected = true
			continue
		}
		kept = append(kept, c)
	}

	merged := make([]Candidate, 0, len(existing)+len(kept))
	merged = append(merged, existing...)
	merged = append(merged, kept...)
	if len(merged) > maxCount {
		merged = merged[:maxCount]
		truncated = true
	}

	switch {
	case typeRejected:
		return merged, ViolationUnsupportedType
	case sizeRejected:
		return merged, ViolationTooLarge
	case truncated:
		return merged, ViolationTooMany
	}
	return merged, ViolationNone
}
