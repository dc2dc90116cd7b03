package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"words-of-healing/internal/app"
	"words-of-healing/internal/domain"
)

// HostHandler exposes the host control surface: level toggles, the live
// leaderboard, and the administrative wipe.
type HostHandler struct {
	host *app.HostService
}

func NewHostHandler(host *app.HostService) *HostHandler {
	return &HostHandler{host: host}
}

// Register mounts the host routes on mux.
func (h *HostHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/host/levels", h.handleLevels)
	mux.HandleFunc("/host/levels/reset", h.handleLevelsReset)
	mux.HandleFunc("/host/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/host/reset", h.handleReset)
}

type levelTogglePayload struct {
	Level int  `json:"level"`
	Open  bool `json:"open"`
}

func (h *HostHandler) handleLevels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.host.UnlockState())
	case http.MethodPost:
		var payload levelTogglePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		state, err := h.host.SetLevelOpen(r.Context(), payload.Level, payload.Open)
		if err != nil {
			if errors.Is(err, domain.ErrLevelOutOfRange) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("host: toggle level %d: %v", payload.Level, err)
			writeError(w, http.StatusInternalServerError, "failed to persist unlock state")
			return
		}
		writeJSON(w, http.StatusOK, state)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLevelsReset locks every level again for a fresh run. Leaderboard
// rows are untouched; /host/reset wipes those.
func (h *HostHandler) handleLevelsReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	state, err := h.host.ResetEvent(r.Context())
	if err != nil {
		log.Printf("host: reset levels: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to reset unlock state")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *HostHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	records, err := h.host.Leaderboard(r.Context())
	if err != nil {
		log.Printf("host: leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if records == nil {
		records = []domain.ParticipantRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type resetPayload struct {
	Password string `json:"password"`
}

func (h *HostHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload resetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.host.Wipe(r.Context(), payload.Password); err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		// The delete reported failure: rows must not be assumed removed.
		log.Printf("host: wipe: %v", err)
		writeError(w, http.StatusInternalServerError, "wipe failed; records were not removed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "wiped"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}
