// Package services implements the capsule submission pipeline and the
// read-side operations over the persistence and object-storage collaborators.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/timecapsule/internal/common"
	"github.com/dmitrijs2005/timecapsule/internal/logging"
	"github.com/dmitrijs2005/timecapsule/internal/server/attachments"
	sc "github.com/dmitrijs2005/timecapsule/internal/server/config"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/dmitrijs2005/timecapsule/internal/server/repositories/repomanager"
)

// OpenAtLayout is the wire format of the unlock date.
const OpenAtLayout = "2006-01-02"

// Field validation errors, checked in this order. Each is distinct so the
// surface layer can report exactly one specific problem.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrMessageRequired    = errors.New("message is required")
	ErrOpenDateRequired   = errors.New("open date is required")
	ErrOpenDateInvalid    = errors.New("open date is not a valid date")
	ErrOpenDateInPast     = errors.New("open date is in the past")
	ErrTooManyAttachments = errors.New("too many attachments")
)

// Collaborator failure markers, so the surface layer can tell an object
// storage outage from a database one.
var (
	ErrUploadFailed = errors.New("attachment upload failed")
	ErrStoreFailed  = errors.New("capsule store failed")
)

// now is a seam for testing date validation.
var now = time.Now

// Draft carries the user's in-progress capsule input. On any failure the
// caller keeps the draft untouched, so resubmission is always possible.
type Draft struct {
	Title       string
	Message     string
	OpenAt      string
	Attachments []attachments.Candidate
}

// Uploader pushes the draft's attachments to object storage, all or nothing.
type Uploader interface {
	Upload(ctx context.Context, items []attachments.Candidate) ([]models.Attachment, error)
}

// CapsuleService validates drafts, orchestrates attachment uploads and talks
// to the capsule repository.
type CapsuleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	uploader    Uploader
	config      *sc.Config
	logger      logging.Logger
}

func NewCapsuleService(db *sql.DB, rm repomanager.RepositoryManager, up Uploader, config *sc.Config, logger logging.Logger) *CapsuleService {
	return &CapsuleService{
		db:          db,
		repomanager: rm,
		uploader:    up,
		config:      config,
		logger:      logger.With("module", "capsule_service"),
	}
}

// validateDraft runs the fail-closed field checks in order and returns the
// parsed unlock date. A same-day unlock date is allowed.
func (s *CapsuleService) validateDraft(draft Draft) (time.Time, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return time.Time{}, ErrTitleRequired
	}
	if strings.TrimSpace(draft.Message) == "" {
		return time.Time{}, ErrMessageRequired
	}
	if draft.OpenAt == "" {
		return time.Time{}, ErrOpenDateRequired
	}
	openAt, err := time.Parse(OpenAtLayout, draft.OpenAt)
	if err != nil {
		return time.Time{}, ErrOpenDateInvalid
	}

	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	if openAt.Before(today) {
		return time.Time{}, ErrOpenDateInPast
	}

	return openAt, nil
}

// Create runs the full submission pipeline: field validation, concurrent
// attachment upload, then the record write. Validation failures issue no
// uploads; an upload failure aborts the submission before anything is
// persisted, so the successful uploads' URLs are discarded. A failed record
// write leaves the draft intact; resubmission re-uploads all attachments.
func (s *CapsuleService) Create(ctx context.Context, draft Draft) (*models.Capsule, error) {
	openAt, err := s.validateDraft(draft)
	if err != nil {
		return nil, err
	}
	if len(draft.Attachments) > s.config.MaxAttachmentCount {
		return nil, ErrTooManyAttachments
	}

	uploaded, err := s.uploader.Upload(ctx, draft.Attachments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	capsule := &models.Capsule{
		Title:       strings.TrimSpace(draft.Title),
		Message:     strings.TrimSpace(draft.Message),
		OpenAt:      openAt,
		Attachments: uploaded,
	}

	repo := s.repomanager.Capsules(s.db)
	if err := repo.Create(ctx, capsule); err != nil {
		s.logger.Error(ctx, "capsule create failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.logger.Info(ctx, "capsule created", "capsule_id", capsule.ID, "attachments", len(capsule.Attachments))
	return capsule, nil
}

// List fetches all capsules, newest first. Attachments arrive normalized
// from the repository; callers derive lock state and re-sort per view mode.
func (s *CapsuleService) List(ctx context.Context) ([]*models.Capsule, error) {
	repo := s.repomanager.Capsules(s.db)
	capsules, err := repo.SelectAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "capsule list failed", "error", err.Error())
		return nil, fmt.Errorf("list capsules: %w", err)
	}
	return capsules, nil
}

// Get returns one capsule or common.ErrNotFound.
func (s *CapsuleService) Get(ctx context.Context, id string) (*models.Capsule, error) {
	repo := s.repomanager.Capsules(s.db)
	capsule, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "capsule get failed", "capsule_id", id, "error", err.Error())
		return nil, fmt.Errorf("get capsule: %w", err)
	}
	return capsule, nil
}

// Delete removes a persisted capsule. The confirmed flag is the explicit
// user confirmation step: without it no removal request reaches the store
// and common.ErrNotConfirmed is returned. Callers evict the capsule from
// their in-memory collection only after this returns nil.
func (s *CapsuleService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return common.ErrNotConfirmed
	}

	repo := s.repomanager.Capsules(s.db)
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "capsule delete failed", "capsule_id", id, "error", err.Error())
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.logger.Info(ctx, "capsule deleted", "capsule_id", id)
	return nil
}
