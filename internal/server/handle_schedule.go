package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// ScheduleItemRequest is the request body for POST /api/schedule.
type ScheduleItemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	PhaseID     string   `json:"phase_id"`
	Notes       string   `json:"notes"`
	People      []string `json:"people"`
	Groups      []string `json:"groups"`
}

func (req *ScheduleItemRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if req.StartTime == "" {
		return "start_time is required"
	}
	if req.EndTime == "" {
		return "end_time is required"
	}
	return ""
}

// ReorderRequest is the request body for PUT /api/schedule/reorder.
// Order must list every schedule item id exactly once.
type ReorderRequest struct {
	Order []string `json:"order"`
}

func handleScheduleList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.Schedule(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleScheduleCreate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleItemRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		item, err := store.CreateScheduleItem(r.Context(), eventdeck.ScheduleItem{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			PhaseID:     req.PhaseID,
			Notes:       req.Notes,
			People:      req.People,
			Groups:      req.Groups,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusCreated, item)
	}
}

// handleScheduleUpdate applies a partial update; only supplied fields
// change. The current flag and the order are not reachable from here.
func handleScheduleUpdate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch eventdeck.ScheduleItemPatch
		if err := readJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		item, err := store.UpdateScheduleItem(r.Context(), chi.URLParam(r, "id"), patch)
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "schedule item not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, item)
	}
}

func handleScheduleDelete(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteScheduleItem(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "schedule item not found")
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

func handleScheduleReorder(ctrl *eventdeck.Controller, store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		items, err := ctrl.Reorder(r.Context(), req.Order)
		if errors.Is(err, eventdeck.ErrInvalidOrder) {
			writeError(w, http.StatusBadRequest, "order must list every schedule item id exactly once")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, items)
	}
}
