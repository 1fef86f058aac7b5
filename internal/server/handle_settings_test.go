package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

func TestSettingsDefaults(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got eventdeck.Settings
	json.NewDecoder(w.Body).Decode(&got)
	if got.EventName != "Event Dashboard" {
		t.Errorf("expected default event name, got %q", got.EventName)
	}
	if got.PrimaryColor != "#3b82f6" {
		t.Errorf("expected default primary color, got %q", got.PrimaryColor)
	}
	if got.IsPaused {
		t.Error("expected is_paused false by default")
	}
	if !got.AutoAdvance {
		t.Error("expected auto_advance true by default")
	}
}

func TestSettingsMerge(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	body := []byte(`{"event_name":"Demo Night","accent_color":"#00ff00"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var merged eventdeck.Settings
	json.NewDecoder(w.Body).Decode(&merged)
	if merged.EventName != "Demo Night" {
		t.Errorf("expected event name 'Demo Night', got %q", merged.EventName)
	}
	if merged.AccentColor != "#00ff00" {
		t.Errorf("expected accent color '#00ff00', got %q", merged.AccentColor)
	}
	// Untouched fields keep their defaults.
	if merged.PrimaryColor != "#3b82f6" {
		t.Errorf("expected primary color unchanged, got %q", merged.PrimaryColor)
	}
	if !merged.ShowCountdown {
		t.Error("expected show_countdown unchanged")
	}

	// A second partial update leaves the first one intact.
	body = []byte(`{"is_paused":true}`)
	req = httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("second put: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var got eventdeck.Settings
	json.NewDecoder(w.Body).Decode(&got)
	if got.EventName != "Demo Night" {
		t.Errorf("expected event name to survive, got %q", got.EventName)
	}
	if !got.IsPaused {
		t.Error("expected is_paused true")
	}
}

func TestSettingsExplicitFalse(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	// false is a real value, not an omitted field.
	body := []byte(`{"auto_advance":false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got eventdeck.Settings
	json.NewDecoder(w.Body).Decode(&got)
	if got.AutoAdvance {
		t.Error("expected auto_advance false")
	}
}
