package server

import (
	"net/http"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

func handleSettingsGet(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.Settings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// handleSettingsUpdate merges the supplied fields over the stored
// settings; omitted fields keep their values.
func handleSettingsUpdate(store Store, sync StateSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch eventdeck.SettingsPatch
		if err := readJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		st, err := store.MergeSettings(r.Context(), patch)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		pushState(r.Context(), store, sync)
		writeJSON(w, http.StatusOK, st)
	}
}
