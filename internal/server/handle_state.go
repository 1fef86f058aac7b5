package server

import (
	"context"
	"net/http"
	"time"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// StateSyncer is the slice of the sync client the handlers consume.
type StateSyncer interface {
	Configured() bool
	URL() string
	Push(ctx context.Context, st eventdeck.State) error
	PushLater(st eventdeck.State)
	Fetch(ctx context.Context) (eventdeck.State, error)
}

// StatusResponse is the banner served on GET /api/.
type StatusResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	ExternalAPI string `json:"external_api"`
}

// SyncResponse acknowledges a completed sync.
type SyncResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// pushState snapshots and hands the state to the external sync without
// blocking the request. No-op when sync is not configured.
func pushState(ctx context.Context, store Store, sync StateSyncer) {
	if sync == nil || !sync.Configured() {
		return
	}
	st, err := store.State(ctx)
	if err != nil {
		return
	}
	sync.PushLater(st)
}

func handleStatus(sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{
			Message: "Event Dashboard API",
			Status:  "running",
		}
		if sync != nil {
			resp.ExternalAPI = sync.URL()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleStateGet(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.State(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// handleStateReplace swaps in collections from a posted snapshot.
// Collections absent from the snapshot are left alone.
func handleStateReplace(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var st eventdeck.State
		if err := readJSON(r, &st); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := store.ReplaceState(r.Context(), st); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, SyncResponse{
			Message:   "state updated",
			Timestamp: eventdeck.Timestamp(time.Now()),
		})
	}
}

func handleSyncToExternal(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sync == nil || !sync.Configured() {
			writeError(w, http.StatusBadRequest, "no external state API configured")
			return
		}

		st, err := store.State(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := sync.Push(r.Context(), st); err != nil {
			writeError(w, http.StatusServiceUnavailable, "external state API unreachable")
			return
		}
		writeJSON(w, http.StatusOK, SyncResponse{
			Message:   "state pushed to external API",
			Timestamp: st.Timestamp,
		})
	}
}

func handleSyncFromExternal(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sync == nil || !sync.Configured() {
			writeError(w, http.StatusBadRequest, "no external state API configured")
			return
		}

		st, err := sync.Fetch(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "external state API unreachable")
			return
		}

		if err := store.ReplaceState(r.Context(), st); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, SyncResponse{
			Message:   "state synced from external API",
			Timestamp: st.Timestamp,
		})
	}
}
