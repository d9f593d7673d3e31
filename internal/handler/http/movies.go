package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/service"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service *service.CatalogService
}

// NewMovieHandler creates a new catalog HTTP handler.
func NewMovieHandler(svc *service.CatalogService) *MovieHandler {
	return &MovieHandler{service: svc}
}

// --- Request DTOs ---

// CreateMovieRequest is the JSON request body for adding a movie.
type CreateMovieRequest struct {
	Director string `json:"director" validate:"required,min=1,max=200"`
	Title    string `json:"title" validate:"required,min=1,max=500"`
	Genre    string `json:"genre" validate:"omitempty,max=100"`
	Year     int    `json:"year" validate:"required,gt=1900"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// --- Handlers ---

// Create handles POST /api/v1/movies
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), service.CreateMovieInput{
		Director: req.Director,
		Title:    req.Title,
		Genre:    req.Genre,
		Year:     req.Year,
		Duration: req.Duration,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: movie})
}

// List handles GET /api/v1/movies?sort=watch_count
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	byWatchCount := r.URL.Query().Get("sort") == "watch_count"

	movies, err := h.service.ListMovies(r.Context(), byWatchCount)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movies})
}

// Get handles GET /api/v1/movies/{id}
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// Lookup handles GET /api/v1/movies/lookup?director=...&title=...&year=...
func (h *MovieHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "year must be an integer")
		return
	}

	movie, err := h.service.GetMovieByCompoundKey(r.Context(), domain.CompoundKey{
		Director: q.Get("director"),
		Title:    q.Get("title"),
		Year:     year,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// Delete handles DELETE /api/v1/movies/{id}
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "status": "deleted"}})
}

// Rating handles GET /api/v1/movies/{id}/rating
func (h *MovieHandler) Rating(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	rating, err := h.service.Rating(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "rating": rating}})
}

// movieIDParam parses the {id} path parameter, writing a 400 response on failure.
func movieIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_MOVIE_ID", "movie id must be an integer")
		return 0, false
	}
	return id, true
}
