// Package httpapi exposes the capsule operations over HTTP: multipart
// submission, list and detail rendering with derived lock state, and
// confirmation-gated deletion.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/timecapsule/internal/logging"
	sc "github.com/dmitrijs2005/timecapsule/internal/server/config"
	"github.com/dmitrijs2005/timecapsule/internal/server/models"
	"github.com/dmitrijs2005/timecapsule/internal/server/services"
)

// now is a seam for testing derived lock state.
var now = time.Now

// CapsuleService is the application-layer collaborator contract.
type CapsuleService interface {
	Create(ctx context.Context, draft services.Draft) (*models.Capsule, error)
	List(ctx context.Context) ([]*models.Capsule, error)
	Get(ctx context.Context, id string) (*models.Capsule, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// Server wires the HTTP router to the capsule service.
type Server struct {
	service CapsuleService
	config  *sc.Config
	logger  logging.Logger
}

func NewServer(service CapsuleService, config *sc.Config, logger logging.Logger) *Server {
	return &Server{
		service: service,
		config:  config,
		logger:  logger.With("module", "httpapi"),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/capsules", func(r chi.Router) {
		r.Post("/", s.createCapsule)
		r.Get("/", s.listCapsules)
		r.Get("/{id}", s.getCapsule)
		r.Delete("/{id}", s.deleteCapsule)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddrHTTP,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddrHTTP)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info(ctx, "http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
