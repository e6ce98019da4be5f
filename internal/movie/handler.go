// AngelaMos | 2026
// handler.go

package movie

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/streamvault/internal/core"
	"github.com/angelamos/streamvault/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog surface. Listing and single lookup are
// public; the access check requires a session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.ListMovies)
		r.Get("/{id}", h.GetMovie)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/{id}/access", h.CheckAccess)
		})
	})
}

// RegisterAdminRoutes mounts single-record CRUD under the admin chain. Bulk
// ingestion lives in its own package.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/movies", func(r chi.Router) {
		r.Post("/", h.CreateMovie)
		r.Put("/{id}", h.UpdateMovie)
		r.Delete("/{id}", h.DeleteMovie)
	})
}

func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	movies, err := h.service.List(r.Context(), filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMovieResponses(movies))
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "movie")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMovieResponse(m))
}

func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	categories := middleware.GetUserCategories(r.Context())

	access, err := h.service.CheckAccess(
		r.Context(), chi.URLParam(r, "id"), categories,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "movie")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, access)
}

func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToMovieResponse(m))
}

func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "movie")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMovieResponse(m))
}

func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "movie")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
