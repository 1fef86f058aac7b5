package server

import (
	"net/http"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// MessageRequest is the request body for POST /api/message. Audience
// defaults to "all"; "crew" targets the backstage channel.
type MessageRequest struct {
	Text     string `json:"text"`
	Audience string `json:"audience"`
}

// AckRequest is the request body for POST /api/message/ack.
type AckRequest struct {
	ClientID string `json:"client_id"`
	Audience string `json:"audience"`
}

// ClearRequest is the optional request body for POST
// /api/message/clear.
type ClearRequest struct {
	Audience string `json:"audience"`
}

// handleMessageGet returns the per-client view: active only while the
// message is globally active and this client has not acknowledged it.
func handleMessageGet(msgr *eventdeck.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aud, err := eventdeck.NormalizeAudience(r.URL.Query().Get("audience"))
		if err != nil {
			writeValidationError(w, err)
			return
		}

		view, err := msgr.ViewFor(r.Context(), aud, r.URL.Query().Get("client_id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func handleMessagePost(msgr *eventdeck.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MessageRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		aud, err := eventdeck.NormalizeAudience(req.Audience)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		msg, err := msgr.Post(r.Context(), aud, req.Text)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

func handleMessageAck(msgr *eventdeck.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AckRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		aud, err := eventdeck.NormalizeAudience(req.Audience)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		if _, err := msgr.Ack(r.Context(), aud, req.ClientID); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{Status: "ok"})
	}
}

func handleMessageClear(msgr *eventdeck.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClearRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		aud, err := eventdeck.NormalizeAudience(req.Audience)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		if err := msgr.Clear(r.Context(), aud); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, OKResponse{Status: "ok"})
	}
}
