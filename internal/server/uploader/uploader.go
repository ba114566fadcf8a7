// Package uploader pushes validated attachments to object storage and
// resolves their retrieval URLs.
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/timecapsule/internal/logging"
	"github.com/dmitrijs2005/timecapsule/internal/server/attachments"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"golang.org/x/sync/errgroup"
)

// now is a seam for testing sanitized name timestamps.
var now = time.Now

// ObjectStore is the object-storage collaborator contract.
type ObjectStore interface {
	// Put writes the body under the given key.
	Put(ctx context.Context, key string, body io.Reader) error
	// DownloadURL resolves a publicly fetchable URL for the key.
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Uploader writes attachment candidates under a fixed key prefix.
type Uploader struct {
	store  ObjectStore
	prefix string
	logger logging.Logger
}

func New(store ObjectStore, prefix string, logger logging.Logger) *Uploader {
	return &Uploader{
		store:  store,
		prefix: prefix,
		logger: logger.With("module", "uploader"),
	}
}

// Upload pushes all items concurrently and returns the persisted attachment
// records in the original submission order.
//
// The call is all-or-nothing: if any single upload or URL resolution fails,
// the whole call fails and no partial result is returned. Objects already
// written before the failing one are not cleaned up; they are never
// referenced by any persisted record, so they are orphans, not corruption.
//
// The type tag is derived from the declared media type of each item, never
// re-inspected from the stored object.
func (u *Uploader) Upload(ctx context.Context, items []attachments.Candidate) ([]models.Attachment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	results := make([]models.Attachment, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			key := u.prefix + attachments.SanitizeFileName(item.Name, now())

			if err := u.store.Put(gctx, key, bytes.NewReader(item.Data)); err != nil {
				return fmt.Errorf("upload %q: %w", item.Name, err)
			}

			url, err := u.store.DownloadURL(gctx, key)
			if err != nil {
				return fmt.Errorf("resolve url for %q: %w", item.Name, err)
			}

			results[i] = models.Attachment{
				URL:         url,
				Type:        attachments.TypeFromMediaType(item.MediaType),
				Name:        item.Name,
				SourceIndex: i,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		u.logger.Error(ctx, "attachment upload failed", "count", len(items), "error", err.Error())
		return nil, err
	}

	u.logger.Info(ctx, "attachments uploaded", "count", len(items))
	return results, nil
}
