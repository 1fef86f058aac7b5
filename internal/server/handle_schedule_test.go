package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// createItem posts a minimal schedule item and returns it.
func createItem(t *testing.T, r *chi.Mux, token, title string) eventdeck.ScheduleItem {
	t.Helper()

	body, _ := json.Marshal(ScheduleItemRequest{Title: title, StartTime: "10:00", EndTime: "10:30"})
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create %q: expected 201, got %d: %s", title, w.Code, w.Body.String())
	}

	var item eventdeck.ScheduleItem
	json.NewDecoder(w.Body).Decode(&item)
	if item.ID == "" {
		t.Fatalf("create %q: expected non-empty id", title)
	}
	return item
}

func listSchedule(t *testing.T, r *chi.Mux) []eventdeck.ScheduleItem {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var items []eventdeck.ScheduleItem
	json.NewDecoder(w.Body).Decode(&items)
	return items
}

func TestScheduleCreateAppendsInOrder(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	first := createItem(t, r, token, "Doors open")
	second := createItem(t, r, token, "Opening act")

	if first.Order != 0 || second.Order != 1 {
		t.Errorf("expected orders 0 and 1, got %d and %d", first.Order, second.Order)
	}
	if first.IsCurrent || second.IsCurrent {
		t.Error("new items must not be current")
	}
	if first.People == nil || first.Groups == nil {
		t.Error("expected people and groups to be empty arrays, not null")
	}

	items := listSchedule(t, r)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Doors open" || items[1].Title != "Opening act" {
		t.Errorf("unexpected order: %q, %q", items[0].Title, items[1].Title)
	}
}

func TestScheduleCreateValidation(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"start_time":"10:00","end_time":"10:30"}`},
		{"missing start", `{"title":"X","end_time":"10:30"}`},
		{"missing end", `{"title":"X","start_time":"10:00"}`},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(tc.body))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestScheduleUpdatePartial(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	item := createItem(t, r, token, "Keynote")

	body := []byte(`{"notes":"bring spare mic"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/schedule/"+item.ID, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated eventdeck.ScheduleItem
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Notes != "bring spare mic" {
		t.Errorf("expected notes updated, got %q", updated.Notes)
	}
	if updated.Title != "Keynote" || updated.StartTime != "10:00" {
		t.Errorf("expected untouched fields to survive, got %+v", updated)
	}
}

func TestScheduleUpdateNotFound(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	req := httptest.NewRequest(http.MethodPut, "/api/schedule/missing", strings.NewReader(`{"notes":"x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestScheduleDelete(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	item := createItem(t, r, token, "Q&A")

	req := httptest.NewRequest(http.MethodDelete, "/api/schedule/"+item.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/schedule/"+item.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestScheduleReorder(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	a := createItem(t, r, token, "A")
	b := createItem(t, r, token, "B")
	c := createItem(t, r, token, "C")

	body, _ := json.Marshal(ReorderRequest{Order: []string{c.ID, a.ID, b.ID}})
	req := httptest.NewRequest(http.MethodPut, "/api/schedule/reorder", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var items []eventdeck.ScheduleItem
	json.NewDecoder(w.Body).Decode(&items)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Title != "C" || items[1].Title != "A" || items[2].Title != "B" {
		t.Errorf("unexpected order: %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}
	for i, it := range items {
		if it.Order != i {
			t.Errorf("item %d: expected order %d, got %d", i, i, it.Order)
		}
	}

	// The list endpoint reflects the new order.
	listed := listSchedule(t, r)
	if listed[0].ID != c.ID {
		t.Errorf("expected %q first, got %q", c.ID, listed[0].ID)
	}
}

func TestScheduleReorderMismatch(t *testing.T) {
	r, login := testRouter(t)
	token := login()

	a := createItem(t, r, token, "A")
	b := createItem(t, r, token, "B")

	cases := []struct {
		name  string
		order []string
	}{
		{"subset", []string{a.ID}},
		{"unknown id", []string{a.ID, "missing"}},
		{"duplicate", []string{a.ID, a.ID}},
		{"extra", []string{a.ID, b.ID, "extra"}},
	}

	for _, tc := range cases {
		body, _ := json.Marshal(ReorderRequest{Order: tc.order})
		req := httptest.NewRequest(http.MethodPut, "/api/schedule/reorder", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}

	// The stored order is untouched after the failed attempts.
	items := listSchedule(t, r)
	if items[0].ID != a.ID || items[1].ID != b.ID {
		t.Error("expected original order to survive failed reorders")
	}
}
