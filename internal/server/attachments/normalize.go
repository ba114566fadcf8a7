package attachments

import (
	"strings"

	"github.com/dmitrijs2005/timecapsule/internal/server/models"
)

// audioExtensions is the fixed extension set used to classify bare URLs from
// legacy records that carry no type tag.
var audioExtensions = map[string]struct{}{
	"mp3": {},
	"m4a": {},
	"wav": {},
	"aac": {},
	"ogg": {},
}

// TypeFromMediaType maps a declared media type (or an already-persisted tag)
// to the canonical attachment type. Anything that is not audio is an image;
// that is the upload-time contract and it is never recomputed from content.
func TypeFromMediaType(mediaType string) string {
	if mediaType == models.AttachmentTypeAudio || strings.HasPrefix(mediaType, "audio/") {
		return models.AttachmentTypeAudio
	}
	return models.AttachmentTypeImage
}

// TypeFromURL infers the attachment type from the file extension of a URL,
// case-insensitively, against the fixed audio extension set. Query strings
// and fragments are ignored. Unknown extensions default to image.
func TypeFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	i := strings.LastIndexByte(url, '.')
	if i < 0 {
		return models.AttachmentTypeImage
	}
	ext := strings.ToLower(url[i+1:])
	if _, ok := audioExtensions[ext]; ok {
		return models.AttachmentTypeAudio
	}
	return models.AttachmentTypeImage
}

// Normalize converts a persisted raw attachment sequence into the canonical
// form. Bare URL entries get their type inferred from the URL extension and
// an empty name. Structured entries keep their stored tag when present and
// fall back to extension inference otherwise. Malformed entries are dropped.
//
// Output order matches input order. Each entry's SourceIndex is its original
// enumeration position, so default captions ("image 2") keep numbering by
// the pre-filter position even when earlier entries were dropped.
func Normalize(raw models.RawAttachments) []models.Attachment {
	out := make([]models.Attachment, 0, len(raw))
	for i, ra := range raw {
		if ra.Malformed {
			continue
		}
		a := models.Attachment{
			URL:         ra.URL,
			Name:        ra.Name,
			SourceIndex: i,
		}
		if ra.HasType {
			a.Type = TypeFromMediaType(ra.Type)
		} else {
			a.Type = TypeFromURL(ra.URL)
		}
		out = append(out, a)
	}
	return out
}
