package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// Deps carries everything the routes need, wired once in main and
// once per test router.
type Deps struct {
	Logger   *slog.Logger
	Store    Store
	Control  *eventdeck.Controller
	Messages *eventdeck.Messenger
	Sessions *SessionStore
	Sync     StateSyncer
	SPADir   string

	CORSOrigins []string
}

func addRoutes(r chi.Router, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("EventDeck API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(d.Logger, d.Store))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handleStatus(d.Sync))

		// Public reads, polled by the viewer and crew pages.
		r.Get("/settings", handleSettingsGet(d.Store))
		r.Get("/phases", handlePhaseList(d.Store))
		r.Get("/people", handlePersonList(d.Store))
		r.Get("/groups", handleGroupList(d.Store))
		r.Get("/schedule", handleScheduleList(d.Store))
		r.Get("/state", handleStateGet(d.Store))
		r.Get("/message", handleMessageGet(d.Messages))
		r.Post("/message/ack", handleMessageAck(d.Messages))

		r.Post("/auth/login", handleAuthLogin(d.Store, d.Sessions))

		// Everything that mutates requires an admin bearer token.
		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(d.Sessions))

			r.Get("/auth/verify", handleAuthVerify())
			r.Post("/auth/change-password", handleAuthChangePassword(d.Store))

			r.Put("/settings", handleSettingsUpdate(d.Store, d.Sync))

			r.Post("/phases", handlePhaseCreate(d.Store, d.Sync))
			r.Put("/phases/{id}", handlePhaseUpdate(d.Store, d.Sync))
			r.Delete("/phases/{id}", handlePhaseDelete(d.Store, d.Sync))

			r.Post("/people", handlePersonCreate(d.Store, d.Sync))
			r.Put("/people/{id}", handlePersonUpdate(d.Store, d.Sync))
			r.Delete("/people/{id}", handlePersonDelete(d.Store, d.Sync))

			r.Post("/groups", handleGroupCreate(d.Store, d.Sync))
			r.Put("/groups/{id}", handleGroupUpdate(d.Store, d.Sync))
			r.Delete("/groups/{id}", handleGroupDelete(d.Store, d.Sync))

			r.Post("/schedule", handleScheduleCreate(d.Store, d.Sync))
			r.Put("/schedule/reorder", handleScheduleReorder(d.Control, d.Store, d.Sync))
			r.Put("/schedule/{id}", handleScheduleUpdate(d.Store, d.Sync))
			r.Delete("/schedule/{id}", handleScheduleDelete(d.Store, d.Sync))

			r.Post("/control/next", handleControlNext(d.Control, d.Store, d.Sync))
			r.Post("/control/previous", handleControlPrevious(d.Control, d.Store, d.Sync))
			r.Post("/control/pause", handleControlPause(d.Control, d.Store, d.Sync))
			r.Post("/control/clear-current", handleControlClearCurrent(d.Control, d.Store, d.Sync))
			r.Post("/control/set-current/{id}", handleControlSetCurrent(d.Control, d.Store, d.Sync))

			r.Post("/message", handleMessagePost(d.Messages))
			r.Post("/message/clear", handleMessageClear(d.Messages))

			r.Post("/state", handleStateReplace(d.Store, d.Sync))
			r.Post("/state/sync-to-external", handleSyncToExternal(d.Store, d.Sync))
			r.Post("/state/sync-from-external", handleSyncFromExternal(d.Store, d.Sync))
		})
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			d.Logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
