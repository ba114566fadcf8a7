package attachments

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://x/y/clip.mp3", models.AttachmentTypeAudio},
		{"https://x/y/CLIP.MP3", models.AttachmentTypeAudio},
		{"https://x/y/voice.m4a", models.AttachmentTypeAudio},
		{"https://x/y/a.wav?token=abc", models.AttachmentTypeAudio},
		{"https://x/y/a.ogg#t=10", models.AttachmentTypeAudio},
		{"https://x/y/pic.png", models.AttachmentTypeImage},
		{"https://x/y/pic.jpeg", models.AttachmentTypeImage},
		{"https://x/y/noextension", models.AttachmentTypeImage},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TypeFromURL(tc.url), tc.url)
	}
}

func TestTypeFromMediaType(t *testing.T) {
	assert.Equal(t, models.AttachmentTypeAudio, TypeFromMediaType("audio/mpeg"))
	assert.Equal(t, models.AttachmentTypeAudio, TypeFromMediaType("audio"))
	assert.Equal(t, models.AttachmentTypeImage, TypeFromMediaType("image/png"))
	assert.Equal(t, models.AttachmentTypeImage, TypeFromMediaType("image"))
	assert.Equal(t, models.AttachmentTypeImage, TypeFromMediaType("application/pdf"))
}

func TestNormalize_LegacyBareURL(t *testing.T) {
	var raw models.RawAttachments
	require.NoError(t, json.Unmarshal([]byte(`"https://x/y/clip.mp3"`), &raw))

	got := Normalize(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "https://x/y/clip.mp3", got[0].URL)
	assert.Equal(t, models.AttachmentTypeAudio, got[0].Type)
	assert.Equal(t, "", got[0].Name)
}

func TestNormalize_ObjectWithoutTypeFallsBackToExtension(t *testing.T) {
	var raw models.RawAttachments
	require.NoError(t, json.Unmarshal([]byte(`[{"url":"https://x/y/pic.png","name":"sunset"}]`), &raw))

	got := Normalize(raw)

	require.Len(t, got, 1)
	assert.Equal(t, models.AttachmentTypeImage, got[0].Type)
	assert.Equal(t, "sunset", got[0].Name)
}

func TestNormalize_StoredTagWins(t *testing.T) {
	// The stored tag is authoritative even when the URL extension disagrees.
	var raw models.RawAttachments
	require.NoError(t, json.Unmarshal([]byte(`[{"url":"https://x/y/clip.mp3","type":"image","name":""}]`), &raw))

	got := Normalize(raw)

	require.Len(t, got, 1)
	assert.Equal(t, models.AttachmentTypeImage, got[0].Type)
}

func TestNormalize_DropsMalformedKeepsSourceIndex(t *testing.T) {
	var raw models.RawAttachments
	require.NoError(t, json.Unmarshal([]byte(`["https://x/a.png", 42, "https://x/b.mp3"]`), &raw))

	got := Normalize(raw)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].SourceIndex)
	assert.Equal(t, "https://x/a.png", got[0].URL)
	// the dropped entry does not renumber its neighbor
	assert.Equal(t, 2, got[1].SourceIndex)
	assert.Equal(t, models.AttachmentTypeAudio, got[1].Type)
}

func TestNormalize_EmptyAndNil(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(models.RawAttachments{}))
}
