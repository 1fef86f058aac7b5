package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// PhaseRequest is the request body for creating or replacing a phase.
type PhaseRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

func (req *PhaseRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.Color == "" {
		req.Color = "#3b82f6"
	}
	return ""
}

func handlePhaseList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phases, err := store.Phases(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, phases)
	}
}

func handlePhaseCreate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PhaseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		phase, err := store.CreatePhase(r.Context(), eventdeck.Phase{
			Name:  req.Name,
			Color: req.Color,
			Order: req.Order,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusCreated, phase)
	}
}

func handlePhaseUpdate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PhaseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		phase, err := store.UpdatePhase(r.Context(), chi.URLParam(r, "id"), eventdeck.Phase{
			Name:  req.Name,
			Color: req.Color,
			Order: req.Order,
		})
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "phase not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, phase)
	}
}

func handlePhaseDelete(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeletePhase(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "phase not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, OKResponse{Status: "ok"})
	}
}
