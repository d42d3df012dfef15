package routes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/danielgtaylor/huma/v2"
	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/db"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/model"
	"github.com/dasdy/holdlight/settings"
	"github.com/dasdy/holdlight/wall"
	cs "github.com/dasdy/holdlight/web/components"
)

// WallService is the part of *wall.Wall the handlers use.
type WallService interface {
	State() wall.State
	Toggle(ctx context.Context, row, col int) (int, string, error)
	Clear(ctx context.Context) [][]int
	Save(ctx context.Context, name, difficulty string) ([]model.BoulderSummary, error)
	Load(ctx context.Context, name string) ([][]int, string, error)
	Delete(ctx context.Context, name string) ([]model.BoulderSummary, error)
	Boulders(ctx context.Context) ([]model.BoulderSummary, error)
	SetBrightness(ctx context.Context, b float64) error
	Refresh(ctx context.Context) error
	Rainbow(ctx context.Context) error
	Frame() compositor.Frame
}

// ServerHandler holds all dependencies needed for the web server handlers.
type ServerHandler struct {
	Wall WallService
	// Bus feeds the event stream. Without it /api/events is not registered.
	Bus *events.Bus
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(ctx context.Context, component templ.Component, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	err := component.Render(ctx, &buf)
	if err != nil {
		return fmt.Errorf("could not render template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}

// apiError is the {"error": "..."} body the page script expects.
type apiError struct {
	status  int
	Message string `json:"error" doc:"Error message"`
}

func (e *apiError) Error() string {
	return e.Message
}

func (e *apiError) GetStatus() int {
	return e.status
}

// toHTTPError maps domain errors to statuses. Anything unknown is a storage or
// internal failure and becomes a 500.
func toHTTPError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return &apiError{status: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, settings.ErrInvalidBrightness),
		errors.Is(err, db.ErrInvalidName):
		return &apiError{status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, grid.ErrDimensionMismatch), errors.Is(err, grid.ErrInvalidState):
		return &apiError{status: http.StatusConflict, Message: err.Error()}
	default:
		slog.ErrorContext(ctx, "Request failed", "error", err)

		return &apiError{status: http.StatusInternalServerError, Message: err.Error()}
	}
}

func (s *ServerHandler) BuildRenderContext(ctx context.Context) (cs.RenderContext, error) {
	state := s.Wall.State()

	boulders, err := s.Wall.Boulders(ctx)
	if err != nil {
		return cs.RenderContext{}, err
	}

	rc := cs.NewRenderContext(state.Grid, state.States, state.Cols)
	rc.Boulders = boulders
	rc.Brightness = state.Brightness
	rc.Boulder = state.Boulder
	rc.Difficulty = state.Difficulty

	return rc, nil
}

// IndexHandle renders the editor. Opening the page also recomposes the LEDs,
// which replaces the startup rainbow with the live grid.
func (s *ServerHandler) IndexHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slog.DebugContext(ctx, "Got request to index page")

	if err := s.Wall.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "Could not refresh LEDs", "error", err)
	}

	rc, err := s.BuildRenderContext(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Could not build page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if err := SafeRenderTemplate(ctx, cs.Page(&rc), w); err != nil {
		slog.ErrorContext(ctx, "Could not render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Register adds every JSON operation and the event stream to api.
func (s *ServerHandler) Register(api huma.API) {
	s.registerHoldRoutes(api)
	s.registerBoulderRoutes(api)
	s.registerBrightnessRoutes(api)

	if s.Bus != nil {
		s.registerEventRoutes(api)
	}
}
