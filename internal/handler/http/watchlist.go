package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/service"
)

// WatchlistHandler handles HTTP requests for the ordered watchlist.
type WatchlistHandler struct {
	service *service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist HTTP handler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: svc}
}

// --- Request DTOs ---

// AddByCompoundKeyRequest is the JSON request body for adding a movie by
// (director, title, year) instead of by id.
type AddByCompoundKeyRequest struct {
	Director string `json:"director" validate:"required,min=1,max=200"`
	Title    string `json:"title" validate:"required,min=1,max=500"`
	Year     int    `json:"year" validate:"required,gt=1900"`
}

// SetPositionRequest is the JSON request body carrying a 1-indexed position.
type SetPositionRequest struct {
	ListNumber int `json:"list_number" validate:"required,gte=1"`
}

// SwapRequest is the JSON request body for swapping two entries.
type SwapRequest struct {
	MovieID1 int64 `json:"movie_id_1" validate:"required"`
	MovieID2 int64 `json:"movie_id_2" validate:"required"`
}

// --- Handlers ---

// List handles GET /api/v1/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.All(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: entries})
}

// Clear handles DELETE /api/v1/watchlist
func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed := h.service.Clear(r.Context())

	writeJSON(w, http.StatusOK, response{Data: map[string]int{"removed": removed}})
}

// Stats handles GET /api/v1/watchlist/stats
func (h *WatchlistHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.service.Stats(r.Context())})
}

// Add handles POST /api/v1/watchlist/movies/{id}
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	movie, err := h.service.Add(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: movie})
}

// AddByCompoundKey handles POST /api/v1/watchlist/movies
func (h *WatchlistHandler) AddByCompoundKey(w http.ResponseWriter, r *http.Request) {
	var req AddByCompoundKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.AddByCompoundKey(r.Context(), domain.CompoundKey{
		Director: req.Director,
		Title:    req.Title,
		Year:     req.Year,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: movie})
}

// Get handles GET /api/v1/watchlist/movies/{id}
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	movie, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// Remove handles DELETE /api/v1/watchlist/movies/{id}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "status": "removed"}})
}

// GetByPosition handles GET /api/v1/watchlist/positions/{n}
func (h *WatchlistHandler) GetByPosition(w http.ResponseWriter, r *http.Request) {
	n, ok := listNumberParam(w, r)
	if !ok {
		return
	}

	movie, err := h.service.GetByListNumber(r.Context(), n)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// RemoveByPosition handles DELETE /api/v1/watchlist/positions/{n}
func (h *WatchlistHandler) RemoveByPosition(w http.ResponseWriter, r *http.Request) {
	n, ok := listNumberParam(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveByListNumber(r.Context(), n); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"list_number": n, "status": "removed"}})
}

// Current handles GET /api/v1/watchlist/current
func (h *WatchlistHandler) Current(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.Current(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// SetCurrent handles PUT /api/v1/watchlist/current
func (h *WatchlistHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req SetPositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.GoTo(r.Context(), req.ListNumber); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]int{"current_position": req.ListNumber}})
}

// WatchCurrent handles POST /api/v1/watchlist/current/watch
func (h *WatchlistHandler) WatchCurrent(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.WatchCurrent(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: movie})
}

// MoveToBeginning handles POST /api/v1/watchlist/movies/{id}/move-to-beginning
func (h *WatchlistHandler) MoveToBeginning(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.MoveToBeginning(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "list_number": 1}})
}

// MoveToEnd handles POST /api/v1/watchlist/movies/{id}/move-to-end
func (h *WatchlistHandler) MoveToEnd(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.MoveToEnd(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "status": "moved"}})
}

// SetPosition handles PUT /api/v1/watchlist/movies/{id}/position
func (h *WatchlistHandler) SetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	var req SetPositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.MoveToListNumber(r.Context(), id, req.ListNumber); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{"id": id, "list_number": req.ListNumber}})
}

// Swap handles POST /api/v1/watchlist/swap
func (h *WatchlistHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Swap(r.Context(), req.MovieID1, req.MovieID2); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]int64{
		"movie_id_1": req.MovieID1,
		"movie_id_2": req.MovieID2,
	}})
}

// listNumberParam parses the {n} path parameter, writing a 400 response on failure.
func listNumberParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_LIST_NUMBER", "list number must be an integer")
		return 0, false
	}
	return n, true
}
