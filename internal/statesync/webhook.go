package statesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// NotifyStartup announces the freshly booted dashboard to the webhook
// URL, typically an automation flow that wants to know where the
// dashboard came up. Does nothing without a URL; failures are logged
// and swallowed.
func NotifyStartup(ctx context.Context, logger *slog.Logger, webhookURL string) {
	if webhookURL == "" {
		return
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	ip := localIP(hostname)
	payload, err := json.Marshal(map[string]string{
		"event":     "startup",
		"hostname":  hostname,
		"ip":        ip,
		"timestamp": eventdeck.Timestamp(time.Now()),
		"message":   fmt.Sprintf("Event Dashboard started on %s", ip),
	})
	if err != nil {
		logger.Warn("startup webhook payload", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		logger.Warn("startup webhook request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := (&http.Client{Timeout: requestTimeout}).Do(req)
	if err != nil {
		logger.Warn("startup webhook failed", slog.String("error", err.Error()))
		return
	}
	resp.Body.Close()
	logger.Info("startup webhook delivered",
		slog.String("hostname", hostname),
		slog.String("ip", ip))
}

func localIP(hostname string) string {
	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}
	return addrs[0]
}
