package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// PersonRequest is the request body for creating or replacing a
// person.
type PersonRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Color string `json:"color"`
}

func (req *PersonRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

func handlePersonList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		people, err := store.People(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, people)
	}
}

func handlePersonCreate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PersonRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		person, err := store.CreatePerson(r.Context(), eventdeck.Person{
			Name:  req.Name,
			Role:  req.Role,
			Color: req.Color,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusCreated, person)
	}
}

func handlePersonUpdate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PersonRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		person, err := store.UpdatePerson(r.Context(), chi.URLParam(r, "id"), eventdeck.Person{
			Name:  req.Name,
			Role:  req.Role,
			Color: req.Color,
		})
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, person)
	}
}

func handlePersonDelete(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeletePerson(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, eventdeck.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person not found")
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
