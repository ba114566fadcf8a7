package models

import (
	"bytes"
	"encoding/json"
)

// Attachment type tags as persisted in capsule records.
const (
	AttachmentTypeImage = "image"
	AttachmentTypeAudio = "audio"
)

// Attachment is the canonical shape of a persisted attachment reference.
// The content itself lives in object storage and is reachable via URL.
type Attachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`

	// SourceIndex is the position this entry held in the persisted sequence
	// before malformed entries were dropped. Default captions number by it,
	// so dropping a bad entry never renumbers its neighbors.
	SourceIndex int `json:"-"`
}

// RawAttachment is one element of a capsule's persisted attachment field in
// whichever shape the record stored it: a bare URL string from a legacy row,
// or an object with optional type/name fields. Anything else is kept only as
// a Malformed marker so normalization can preserve source positions.
type RawAttachment struct {
	URL       string
	Type      string
	Name      string
	HasType   bool
	Malformed bool
}

// RawAttachments is the tagged union for the persisted attachment field.
// Historically the field has been stored as: absent/null, a single URL
// string, an array of URL strings, or an array of {url,type,name} objects.
// All shape-branching lives in UnmarshalJSON; the rest of the pipeline only
// ever sees this one type.
type RawAttachments []RawAttachment

func (r *RawAttachments) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = nil
		return nil
	}

	// single legacy URL string
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = RawAttachments{{URL: s}}
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return err
	}

	out := make(RawAttachments, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		switch {
		case len(e) > 0 && e[0] == '"':
			var s string
			if err := json.Unmarshal(e, &s); err != nil {
				return err
			}
			out = append(out, RawAttachment{URL: s})
		case len(e) > 0 && e[0] == '{':
			var obj struct {
				URL  string  `json:"url"`
				Type *string `json:"type"`
				Name string  `json:"name"`
			}
			if err := json.Unmarshal(e, &obj); err != nil {
				return err
			}
			ra := RawAttachment{URL: obj.URL, Name: obj.Name}
			if obj.Type != nil {
				ra.Type = *obj.Type
				ra.HasType = true
			}
			out = append(out, ra)
		default:
			// numbers, booleans, nested arrays: not attachments
			out = append(out, RawAttachment{Malformed: true})
		}
	}
	*r = out
	return nil
}
