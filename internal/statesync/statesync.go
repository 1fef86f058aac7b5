// Package statesync exchanges full state snapshots with a peer HTTP
// API and announces startup to a webhook. Everything here is best
// effort from the dashboard's point of view: the peer being down must
// never take the server with it.
package statesync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// ErrNotConfigured is returned when no external state API URL is set.
var ErrNotConfigured = errors.New("external state API not configured")

const requestTimeout = 10 * time.Second

// Syncer pushes and pulls snapshots to the configured peer URL. A nil
// or unconfigured Syncer is valid; every call becomes a no-op or
// ErrNotConfigured.
type Syncer struct {
	apiURL string
	client *http.Client
	logger *slog.Logger
}

func New(apiURL string, logger *slog.Logger) *Syncer {
	return &Syncer{
		apiURL: apiURL,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger,
	}
}

func (s *Syncer) Configured() bool {
	return s != nil && s.apiURL != ""
}

// URL returns the peer URL for display in the status endpoint.
func (s *Syncer) URL() string {
	if s == nil {
		return ""
	}
	return s.apiURL
}

// Push posts the snapshot to the peer.
func (s *Syncer) Push(ctx context.Context, st eventdeck.State) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	body, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting state: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("peer returned status %d", resp.StatusCode)
	}
	s.logger.Debug("synced state to external API", slog.Int("status", resp.StatusCode))
	return nil
}

// PushLater pushes the snapshot on its own goroutine so callers on the
// request path never wait on the peer. Failures are logged only.
func (s *Syncer) PushLater(st eventdeck.State) {
	if !s.Configured() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := s.Push(ctx, st); err != nil {
			s.logger.Warn("state sync failed", slog.String("error", err.Error()))
		}
	}()
}

// Fetch pulls the peer's snapshot.
func (s *Syncer) Fetch(ctx context.Context) (eventdeck.State, error) {
	if !s.Configured() {
		return eventdeck.State{}, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return eventdeck.State{}, fmt.Errorf("building sync request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return eventdeck.State{}, fmt.Errorf("fetching state: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return eventdeck.State{}, fmt.Errorf("peer returned status %d", resp.StatusCode)
	}
	var st eventdeck.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return eventdeck.State{}, fmt.Errorf("decoding peer state: %w", err)
	}
	return st, nil
}
