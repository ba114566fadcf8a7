package attachments

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// SanitizeFileName rewrites an original display name into a storage-safe
// object name: whitespace runs in the base become "_", every other character
// outside [A-Za-z0-9_-] is stripped, and the epoch-millisecond timestamp of
// now is appended before the extension.
//
//	SanitizeFileName("my file.JPG", t) == "my_file_<ms>.JPG"
//
// The extension (everything after the last dot) is carried over unvalidated.
// The result only contains characters from [A-Za-z0-9_.-]. Uniqueness relies
// on the millisecond timestamp: two calls within the same millisecond may
// collide, which callers issuing many uploads in a tight loop must tolerate.
func SanitizeFileName(name string, now time.Time) string {
	base, ext := name, ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}

	var b strings.Builder
	b.Grow(len(base))
	inSpace := false
	for _, r := range base {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	if ext != "" {
		b.WriteByte('.')
		b.WriteString(ext)
	}
	return b.String()
}
