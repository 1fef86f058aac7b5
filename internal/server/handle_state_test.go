package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightstage/eventdeck/internal/eventdeck"
	"github.com/brightstage/eventdeck/internal/statesync"
)

func TestStatusBanner(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp StatusResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "Event Dashboard API" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Status != "running" {
		t.Errorf("unexpected status %q", resp.Status)
	}
	if resp.ExternalAPI != "" {
		t.Errorf("expected empty external_api, got %q", resp.ExternalAPI)
	}
}

func TestStateSnapshot(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	createItem(t, r, token, "Opening")

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var st eventdeck.State
	json.NewDecoder(w.Body).Decode(&st)
	if st.Settings.EventName != "Event Dashboard" {
		t.Errorf("unexpected settings %+v", st.Settings)
	}
	if len(st.Phases) != 4 {
		t.Errorf("expected 4 phases, got %d", len(st.Phases))
	}
	if len(st.Schedule) != 1 || st.Schedule[0].Title != "Opening" {
		t.Errorf("unexpected schedule %+v", st.Schedule)
	}
	if st.Timestamp == "" {
		t.Error("expected snapshot timestamp")
	}
}

func TestStateReplace(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	snap := eventdeck.State{
		Phases: []eventdeck.Phase{
			{ID: "ph1", Name: "Imported", Color: "#111111", Order: 0},
		},
		Schedule: []eventdeck.ScheduleItem{
			{ID: "s2", Title: "Second", Order: 1, IsCurrent: true},
			{ID: "s1", Title: "First", Order: 0, IsCurrent: true},
		},
	}
	body, _ := json.Marshal(snap)
	req := httptest.NewRequest(http.MethodPost, "/api/state", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SyncResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "state updated" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	// The phases were swapped wholesale.
	req = httptest.NewRequest(http.MethodGet, "/api/phases", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var phases []eventdeck.Phase
	json.NewDecoder(w.Body).Decode(&phases)
	if len(phases) != 1 || phases[0].Name != "Imported" {
		t.Errorf("unexpected phases %+v", phases)
	}

	// The schedule is sorted and at most one item stays current.
	items := listSchedule(t, r)
	if len(items) != 2 || items[0].ID != "s1" {
		t.Fatalf("unexpected schedule %+v", items)
	}
	if !items[0].IsCurrent || items[1].IsCurrent {
		t.Error("expected only the first flagged item to stay current")
	}

	// An empty snapshot changes nothing.
	req = httptest.NewRequest(http.MethodPost, "/api/state", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("empty snapshot: expected 200, got %d", w.Code)
	}

	if got := listSchedule(t, r); len(got) != 2 {
		t.Errorf("expected schedule to survive empty snapshot, got %d items", len(got))
	}
}

func TestSyncToExternal(t *testing.T) {
	received := make(chan eventdeck.State, 8)
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var st eventdeck.State
		json.NewDecoder(r.Body).Decode(&st)
		received <- st
		w.WriteHeader(http.StatusOK)
	}))
	defer peer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, login := testRouterWithSync(t, statesync.New(peer.URL, logger))
	token := login()

	req := httptest.NewRequest(http.MethodPost, "/api/state/sync-to-external", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SyncResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "state pushed to external API" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	st := <-received
	if len(st.Phases) != 4 {
		t.Errorf("expected the peer to receive 4 phases, got %d", len(st.Phases))
	}
}

func TestSyncToExternalUnconfigured(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	for _, path := range []string{"/api/state/sync-to-external", "/api/state/sync-from-external"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestSyncToExternalPeerError(t *testing.T) {
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer peer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, login := testRouterWithSync(t, statesync.New(peer.URL, logger))
	token := login()

	req := httptest.NewRequest(http.MethodPost, "/api/state/sync-to-external", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSyncFromExternal(t *testing.T) {
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			// Ignore pushes from pushState.
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(eventdeck.State{
			Phases: []eventdeck.Phase{
				{ID: "r1", Name: "Remote A", Order: 0},
				{ID: "r2", Name: "Remote B", Order: 1},
			},
		})
	}))
	defer peer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, login := testRouterWithSync(t, statesync.New(peer.URL, logger))
	token := login()

	req := httptest.NewRequest(http.MethodPost, "/api/state/sync-from-external", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SyncResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "state synced from external API" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/phases", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var phases []eventdeck.Phase
	json.NewDecoder(w.Body).Decode(&phases)
	if len(phases) != 2 || phases[0].Name != "Remote A" {
		t.Errorf("unexpected phases %+v", phases)
	}
}

func TestSyncFromExternalUnreachable(t *testing.T) {
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	peer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, login := testRouterWithSync(t, statesync.New(peer.URL, logger))
	token := login()

	req := httptest.NewRequest(http.MethodPost, "/api/state/sync-from-external", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}
