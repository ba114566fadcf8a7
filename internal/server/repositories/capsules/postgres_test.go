package capsules

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timecapsule/internal/common"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestCreate_AssignsIDAndCreatedAt(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO capsules")).
		WithArgs(sqlmock.AnyArg(), "A", "B", sqlmock.AnyArg(), []byte(`[]`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	capsule := &models.Capsule{
		Title:   "A",
		Message: "B",
		OpenAt:  time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err := repo.Create(context.Background(), capsule)

	require.NoError(t, err)
	assert.NotEmpty(t, capsule.ID)
	assert.Equal(t, created, capsule.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SerializesAttachments(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	wantJSON := []byte(`[{"url":"https://x/a.png","type":"image","name":"a.png"}]`)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO capsules")).
		WithArgs(sqlmock.AnyArg(), "A", "B", sqlmock.AnyArg(), wantJSON).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	capsule := &models.Capsule{
		Title:   "A",
		Message: "B",
		OpenAt:  time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		Attachments: []models.Attachment{
			{URL: "https://x/a.png", Type: models.AttachmentTypeImage, Name: "a.png"},
		},
	}

	require.NoError(t, repo.Create(context.Background(), capsule))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO capsules")).
		WillReturnError(errors.New("connection lost"))

	err := repo.Create(context.Background(), &models.Capsule{Title: "A", Message: "B"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
}

func selectColumns() []string {
	return []string{"id", "title", "message", "open_at", "attachments", "created_at"}
}

func TestSelectAll_NormalizesLegacyShapes(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	openAt := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(selectColumns()).
		AddRow("id-1", "new", "msg", openAt, []byte(`[{"url":"https://x/p.png","type":"image","name":"p"}]`), created).
		AddRow("id-2", "legacy-array", "msg", openAt, []byte(`["https://x/clip.mp3"]`), created).
		AddRow("id-3", "legacy-string", "msg", openAt, []byte(`"https://x/pic.png"`), created).
		AddRow("id-4", "empty", "msg", openAt, []byte(`[]`), created)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, message, open_at, attachments, created_at FROM capsules")).
		WillReturnRows(rows)

	got, err := repo.SelectAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Len(t, got[0].Attachments, 1)
	assert.Equal(t, "p", got[0].Attachments[0].Name)

	require.Len(t, got[1].Attachments, 1)
	assert.Equal(t, models.AttachmentTypeAudio, got[1].Attachments[0].Type)

	require.Len(t, got[2].Attachments, 1)
	assert.Equal(t, models.AttachmentTypeImage, got[2].Attachments[0].Type)
	assert.Equal(t, "", got[2].Attachments[0].Name)

	assert.Empty(t, got[3].Attachments)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, message, open_at, attachments, created_at FROM capsules")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(selectColumns()))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByID_Found(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	openAt := time.Date(2030, 5, 5, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(selectColumns()).
		AddRow("id-1", "t", "m", openAt, []byte(`[]`), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, message, open_at, attachments, created_at FROM capsules")).
		WithArgs("id-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, openAt, got.OpenAt)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		execErr error
		wantErr error
	}{
		{"deletes one row", 1, nil, nil},
		{"missing row", 0, nil, common.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newDB(t)
			repo := NewPostgresRepository(db)

			exp := mock.ExpectExec(regexp.QuoteMeta("DELETE FROM capsules WHERE id = $1;")).WithArgs("id-1")
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tc.rows))
			}

			err := repo.Delete(context.Background(), "id-1")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelete_DBError(t *testing.T) {
	db, mock := newDB(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM capsules")).
		WithArgs("id-1").
		WillReturnError(errors.New("timeout"))

	err := repo.Delete(context.Background(), "id-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}
