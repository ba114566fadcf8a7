package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/timecapsule/internal/common"
	"github.com/dmitrijs2005/timecapsule/internal/server/attachments"
	"github.com/dmitrijs2005/timecapsule/internal/server/listview"
	"github.com/dmitrijs2005/timecapsule/internal/server/services"
)

// multipartMemoryLimit bounds how much of a submission is buffered in memory
// before spilling to temp files.
const multipartMemoryLimit = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// createCapsule accepts a multipart submission: title, message and open_at
// fields plus up to three file parts named "files". The whole request is
// rejected when any file trips a validation rule; nothing is uploaded first.
func (s *Server) createCapsule(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	batch, err := s.readFileParts(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file part")
		return
	}

	kept, violation := attachments.Validate(nil, batch, s.config.MaxAttachmentSize, s.config.MaxAttachmentCount)
	if violation != attachments.ViolationNone {
		writeError(w, http.StatusUnprocessableEntity, violation.Message())
		return
	}

	draft := services.Draft{
		Title:       r.FormValue("title"),
		Message:     r.FormValue("message"),
		OpenAt:      r.FormValue("open_at"),
		Attachments: kept,
	}

	capsule, err := s.service.Create(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrMessageRequired),
			errors.Is(err, services.ErrOpenDateRequired),
			errors.Is(err, services.ErrOpenDateInvalid),
			errors.Is(err, services.ErrOpenDateInPast):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrTooManyAttachments):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrUploadFailed):
			writeError(w, http.StatusBadGateway, services.ErrUploadFailed.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCapsuleResponse(capsule, now()))
}

func (s *Server) readFileParts(r *http.Request) ([]attachments.Candidate, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var batch []attachments.Candidate
	for _, hdr := range r.MultipartForm.File["files"] {
		f, err := hdr.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		batch = append(batch, attachments.Candidate{
			Name:      hdr.Filename,
			MediaType: hdr.Header.Get("Content-Type"),
			Size:      hdr.Size,
			Data:      data,
		})
	}
	return batch, nil
}

// listCapsules renders all capsules in the requested sort order. Lock state
// is derived per capsule at render time.
func (s *Server) listCapsules(w http.ResponseWriter, r *http.Request) {
	mode := listview.DefaultMode
	if raw := r.URL.Query().Get("sort"); raw != "" {
		parsed, ok := listview.ParseMode(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown sort mode")
			return
		}
		mode = parsed
	}

	capsules, err := s.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	n := now()
	resp := listResponse{Sort: string(mode), Capsules: []capsuleResponse{}}
	for _, c := range listview.Sorted(capsules, mode) {
		resp.Capsules = append(resp.Capsules, toCapsuleResponse(c, n))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getCapsule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	capsule, err := s.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "capsule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toCapsuleResponse(capsule, now()))
}

// deleteCapsule removes a capsule only when the request carries the explicit
// confirmation flag; without it nothing reaches the store.
func (s *Server) deleteCapsule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmed := r.URL.Query().Get("confirm") == "true"

	err := s.service.Delete(r.Context(), id, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotConfirmed):
			writeError(w, http.StatusConflict, "deletion requires confirmation")
		case errors.Is(err, common.ErrNotFound):
			writeError(w, http.StatusNotFound, "capsule not found")
		default:
			writeError(w, http.StatusBadGateway, "capsule store unavailable")
		}
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{ID: id, Deleted: true})
}
