package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// GroupRequest is the request body for creating or replacing a group.
type GroupRequest struct {
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	MemberIDs []string `json:"member_ids"`
}

func (req *GroupRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

func handleGroupList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := store.Groups(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func handleGroupCreate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		group, err := store.CreateGroup(r.Context(), eventdeck.Group{
			Name:      req.Name,
			Color:     req.Color,
			MemberIDs: req.MemberIDs,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusCreated, group)
	}
}

func handleGroupUpdate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		group, err := store.UpdateGroup(r.Context(), chi.URLParam(r, "id"), eventdeck.Group{
			Name:      req.Name,
			Color:     req.Color,
			MemberIDs: req.MemberIDs,
		})
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, group)
	}
}

func handleGroupDelete(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteGroup(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "group not found")
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
