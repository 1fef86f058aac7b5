package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// readOptionalJSON decodes like readJSON but accepts an empty body,
// leaving v at its zero value. Several control-style endpoints take
// only optional parameters.
func readOptionalJSON(r *http.Request, v any) error {
	err := readJSON(r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError turns a domain validation error into a 400 with
// its reason, and anything else into a 500.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *eventdeck.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
