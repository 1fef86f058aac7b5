package statesync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPushSendsSnapshot(t *testing.T) {
	var got eventdeck.State
	var contentType string
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding pushed state: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer peer.Close()

	s := New(peer.URL, discard())
	st := eventdeck.State{
		Settings:  eventdeck.DefaultSettings(),
		Phases:    []eventdeck.Phase{{ID: "p1", Name: "Live"}},
		Schedule:  []eventdeck.ScheduleItem{{ID: "s1", Title: "Opening"}},
		Timestamp: "2026-08-25T12:00:00.000Z",
	}
	if err := s.Push(context.Background(), st); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("content type = %q", contentType)
	}
	if len(got.Phases) != 1 || got.Phases[0].ID != "p1" {
		t.Fatalf("peer received %+v", got)
	}
	if got.Timestamp != st.Timestamp {
		t.Fatalf("timestamp = %q, want %q", got.Timestamp, st.Timestamp)
	}
}

func TestPushErrorStatus(t *testing.T) {
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer peer.Close()

	s := New(peer.URL, discard())
	if err := s.Push(context.Background(), eventdeck.State{}); err == nil {
		t.Fatal("expected error on 500 from peer")
	}
}

func TestFetchDecodesSnapshot(t *testing.T) {
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		json.NewEncoder(w).Encode(eventdeck.State{
			Schedule: []eventdeck.ScheduleItem{{ID: "s1", Title: "From peer"}},
		})
	}))
	defer peer.Close()

	s := New(peer.URL, discard())
	st, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(st.Schedule) != 1 || st.Schedule[0].Title != "From peer" {
		t.Fatalf("fetched state = %+v", st)
	}
}

func TestUnconfigured(t *testing.T) {
	s := New("", discard())
	if s.Configured() {
		t.Fatal("empty URL reported configured")
	}
	if err := s.Push(context.Background(), eventdeck.State{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Push: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Fetch(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Fetch: expected ErrNotConfigured, got %v", err)
	}

	var nilSyncer *Syncer
	if nilSyncer.Configured() {
		t.Fatal("nil syncer reported configured")
	}
	// Must not panic.
	nilSyncer.PushLater(eventdeck.State{})
}

func TestNotifyStartupPostsPayload(t *testing.T) {
	received := make(chan map[string]string, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding webhook payload: %v", err)
		}
		received <- payload
	}))
	defer hook.Close()

	NotifyStartup(context.Background(), discard(), hook.URL)

	payload := <-received
	if payload["event"] != "startup" {
		t.Fatalf("event = %q, want startup", payload["event"])
	}
	if payload["hostname"] == "" || payload["ip"] == "" || payload["timestamp"] == "" {
		t.Fatalf("incomplete payload: %v", payload)
	}
}

func TestNotifyStartupNoURL(t *testing.T) {
	// Must return without doing anything.
	NotifyStartup(context.Background(), discard(), "")
}
