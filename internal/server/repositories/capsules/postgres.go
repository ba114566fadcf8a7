// Package capsules provides the PostgreSQL-backed repository for capsule
// persistence. Attachments are stored as a jsonb column; historic rows may
// hold a bare URL string or an array of strings, so reads go through the
// RawAttachments union and come back normalized.
package capsules

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timecapsule/internal/common"
	"github.com/dmitrijs2005/timecapsule/internal/dbx"
	"github.com/dmitrijs2005/timecapsule/internal/server/attachments"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements capsule storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new capsule row. The identifier is assigned here and the
// creation timestamp by the database, exactly once; both are written back to
// the passed record. Attachments are serialized in their canonical shape.
func (r *PostgresRepository) Create(ctx context.Context, capsule *models.Capsule) error {
	atts := capsule.Attachments
	if atts == nil {
		atts = []models.Attachment{}
	}
	raw, err := json.Marshal(atts)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}

	id := uuid.NewString()

	query := `
		INSERT INTO capsules (id, title, message, open_at, attachments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	row := r.db.QueryRowContext(ctx, query, id, capsule.Title, capsule.Message, capsule.OpenAt, raw)
	if err := row.Scan(&capsule.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	capsule.ID = id
	return nil
}

// SelectAll returns every capsule, newest first (the caller re-sorts per its
// own mode). Raw attachment payloads are normalized before returning.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Capsule, error) {
	query := `
		SELECT id, title, message, open_at, attachments, created_at FROM capsules
		ORDER BY created_at DESC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select capsules: %w", err)
	}
	defer rows.Close()

	var result []*models.Capsule
	for rows.Next() {
		item, err := scanCapsule(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single capsule or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Capsule, error) {
	query := `
		SELECT id, title, message, open_at, attachments, created_at FROM capsules
		WHERE id = $1;
	`
	row := r.db.QueryRowContext(ctx, query, id)
	item, err := scanCapsule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a capsule row. common.ErrNotFound when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM capsules WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// scanCapsule reads one row's columns and normalizes the raw attachment
// payload at the persistence boundary, so nothing above this layer ever
// branches on the stored JSON shape.
func scanCapsule(scan func(dest ...any) error) (*models.Capsule, error) {
	var item models.Capsule
	var rawAttachments []byte

	if err := scan(&item.ID, &item.Title, &item.Message, &item.OpenAt, &rawAttachments, &item.CreatedAt); err != nil {
		return nil, err
	}

	var raw models.RawAttachments
	if len(rawAttachments) > 0 {
		if err := json.Unmarshal(rawAttachments, &raw); err != nil {
			return nil, fmt.Errorf("decode attachments for capsule %s: %w", item.ID, err)
		}
	}
	item.Attachments = attachments.Normalize(raw)

	return &item, nil
}
