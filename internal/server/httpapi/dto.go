package httpapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/timecapsule/internal/server/lifecycle"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/dmitrijs2005/timecapsule/internal/server/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type attachmentResponse struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Caption string `json:"caption"`
}

type capsuleResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Message     string               `json:"message,omitempty"`
	OpenAt      string               `json:"openAt"`
	Locked      bool                 `json:"locked"`
	State       string               `json:"state"`
	CanDelete   bool                 `json:"canDelete"`
	Attachments []attachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type listResponse struct {
	Sort     string            `json:"sort"`
	Capsules []capsuleResponse `json:"capsules"`
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// caption picks the display label: the stored name when present, otherwise
// "{type} {n}" numbered by the attachment's source position, so a dropped
// malformed neighbor never shifts the numbering.
func caption(a models.Attachment) string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("%s %d", a.Type, a.SourceIndex+1)
}

// toCapsuleResponse derives the wire shape at render time. Lock state is
// recomputed from the clock on every call; a locked capsule's message and
// attachments are withheld.
func toCapsuleResponse(c *models.Capsule, now time.Time) capsuleResponse {
	state := lifecycle.StateAt(c.OpenAt, now)
	locked := state == lifecycle.Locked

	resp := capsuleResponse{
		ID:          c.ID,
		Title:       c.Title,
		OpenAt:      c.OpenAt.Format(services.OpenAtLayout),
		Locked:      locked,
		State:       state.String(),
		CanDelete:   !locked,
		Attachments: []attachmentResponse{},
		CreatedAt:   c.CreatedAt,
	}

	if locked {
		return resp
	}

	resp.Message = c.Message
	for _, a := range c.Attachments {
		resp.Attachments = append(resp.Attachments, attachmentResponse{
			URL:     a.URL,
			Type:    a.Type,
			Name:    a.Name,
			Caption: caption(a),
		})
	}
	return resp
}
