package capsules

import (
	"context"

	"github.com/dmitrijs2005/timecapsule/internal/server/models"
)

// Repository is the persistence collaborator contract for capsules.
type Repository interface {
	// Create appends a new capsule row, assigning ID and CreatedAt on the
	// passed record.
	Create(ctx context.Context, capsule *models.Capsule) error
	// SelectAll returns all capsules ordered by creation time descending.
	// Attachments come back already normalized.
	SelectAll(ctx context.Context) ([]*models.Capsule, error)
	// GetByID returns one capsule or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Capsule, error)
	// Delete removes one capsule row; common.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
