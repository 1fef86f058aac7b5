package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// ControlResponse reports which item is current after a control
// operation; CurrentItemID is null when nothing is.
type ControlResponse struct {
	CurrentItemID *string `json:"current_item_id"`
}

// PauseResponse is the response for POST /api/control/pause.
type PauseResponse struct {
	IsPaused bool `json:"is_paused"`
}

func controlResponse(item *eventdeck.ScheduleItem) ControlResponse {
	if item == nil {
		return ControlResponse{}
	}
	return ControlResponse{CurrentItemID: &item.ID}
}

func handleControlNext(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := ctrl.Next(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, controlResponse(item))
	}
}

func handleControlPrevious(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := ctrl.Previous(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, controlResponse(item))
	}
}

func handleControlSetCurrent(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := ctrl.SetCurrent(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "schedule item not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, controlResponse(item))
	}
}

func handleControlClearCurrent(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.ClearCurrent(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, ControlResponse{})
	}
}

func handleControlPause(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paused, err := ctrl.TogglePause(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, PauseResponse{IsPaused: paused})
	}
}
