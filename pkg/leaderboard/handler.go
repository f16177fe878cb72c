package leaderboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/trytobebee/snake_arena/pkg/config"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler serves the leaderboard over HTTP:
//
//	GET  ?limit=N  top entries (default 10, capped at 100)
//	POST           submit an entry, 201 on success
//	HEAD           health check
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleTop(w, r)
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", "GET, POST, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", r.Method)
	}
}

func (h *Handler) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := config.DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = min(n, config.MaxLeaderboardEntries)
	}

	entries, err := h.store.Top(r.Context(), limit)
	if err != nil {
		log.Printf("leaderboard query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch leaderboard", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// submitRequest keeps score and level as pointers so an absent field is
// told apart from zero
type submitRequest struct {
	PlayerName string `json:"playerName"`
	Score      *int   `json:"score"`
	Level      *int   `json:"level"`
	Theme      string `json:"theme"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, ErrInvalidScore.Error(), "")
		return
	}
	if req.Level == nil {
		writeError(w, http.StatusBadRequest, ErrInvalidLevel.Error(), "")
		return
	}
	e := Entry{PlayerName: req.PlayerName, Score: *req.Score, Level: *req.Level, Theme: req.Theme}
	if e.Theme == "" {
		e.Theme = config.DefaultTheme
	}

	if err := h.store.Submit(r.Context(), e); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		log.Printf("leaderboard submit failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save score", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrInvalidLevel)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Write error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorResponse{Error: msg, Message: detail})
}
