// AngelaMos | 2026
// handler.go

package ingest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/streamvault/internal/core"
)

// maxUploadSize caps tabular uploads at 8 MiB.
const maxUploadSize = 8 << 20

const sampleCSV = `title,description,poster,videoUrl,videoType,category,batchNo,duration,featured,isPremium
Sample Movie 1,This is a great action movie,https://via.placeholder.com/300x450?text=Movie1,https://www.youtube.com/watch?v=dQw4w9WgXcQ,youtube,"Action,Drama",BATCH-2024-001,2h 15min,true,true
Sample Movie 2,Comedy film for everyone,https://via.placeholder.com/300x450?text=Movie2,https://example.com/video.mp4,direct,Comedy,BATCH-2024-002,1h 45min,false,false
Sample Movie 3,Thrilling sci-fi adventure,https://via.placeholder.com/300x450?text=Movie3,https://www.youtube.com/watch?v=example,youtube,"Sci-Fi,Thriller",BATCH-2024-003,2h 30min,true,true`

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

// RegisterAdminRoutes mounts the bulk surface under the admin chain. The
// paths are registered directly because the movie handler already owns the
// /movies subrouter.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/movies/sample-csv", h.SampleCSV)
	r.Post("/movies/bulk-csv", h.BulkCSV)
	r.Post("/movies/bulk", h.BulkJSON)
}

// SampleCSV serves a downloadable template with three example rows.
func (h *Handler) SampleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sample-movies.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sampleCSV)) //nolint:errcheck // client gone
}

func (h *Handler) BulkCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close() //nolint:errcheck // read-only handle

	result, err := h.service.IngestCSV(r.Context(), file)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) BulkJSON(w http.ResponseWriter, r *http.Request) {
	var req BulkMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "movies must be an array")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.IngestJSON(r.Context(), req.Movies)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeIngestError(w http.ResponseWriter, err error) {
	var ingestErr *IngestError
	if errors.As(err, &ingestErr) {
		core.JSONErrorWithDetails(w, http.StatusBadRequest, "DUPLICATE",
			"all videos are duplicates, no new videos were added",
			map[string]any{"duplicates": ingestErr.Duplicates},
		)
		return
	}

	switch {
	case errors.Is(err, ErrNoValidRows):
		core.BadRequest(w,
			"no valid movies found, make sure the file has a title column and at least one data row")
	case errors.Is(err, ErrUnparsableFile):
		core.BadRequest(w, "could not parse uploaded file")
	default:
		core.InternalServerError(w, err)
	}
}
