package eventdeck

import (
	"context"
	"log/slog"
	"time"
)

// AutoAdvancer moves the current marker forward when an item's end
// time has passed. It polls on a fixed interval rather than arming
// timers, so edits to the schedule take effect on the next tick
// without bookkeeping.
type AutoAdvancer struct {
	ctrl     *Controller
	schedule ScheduleRepo
	settings SettingsRepo
	logger   *slog.Logger
	loc      *time.Location

	interval time.Duration
	now      func() time.Time

	// advanced runs after every effective transition, outside the
	// repo calls. The server uses it to push state to the external
	// API.
	advanced func(context.Context)
}

func NewAutoAdvancer(ctrl *Controller, schedule ScheduleRepo, settings SettingsRepo, logger *slog.Logger, loc *time.Location, advanced func(context.Context)) *AutoAdvancer {
	return &AutoAdvancer{
		ctrl:     ctrl,
		schedule: schedule,
		settings: settings,
		logger:   logger,
		loc:      loc,
		interval: 5 * time.Second,
		now:      time.Now,
		advanced: advanced,
	}
}

// Run ticks until ctx is cancelled. It always returns nil so it can
// sit in an errgroup next to the HTTP server without tearing it down.
func (a *AutoAdvancer) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if a.step(ctx) && a.advanced != nil {
				a.advanced(ctx)
			}
		}
	}
}

// step performs at most one transition and reports whether it did.
func (a *AutoAdvancer) step(ctx context.Context) bool {
	st, err := a.settings.Settings(ctx)
	if err != nil {
		a.logger.Error("auto-advance: reading settings", slog.String("error", err.Error()))
		return false
	}
	if st.IsPaused || !st.AutoAdvance {
		return false
	}

	items, err := a.schedule.Schedule(ctx)
	if err != nil {
		a.logger.Error("auto-advance: reading schedule", slog.String("error", err.Error()))
		return false
	}
	idx := currentIndex(items)
	if idx < 0 {
		return false
	}

	cur := items[idx]
	if cur.EndTime == "" {
		return false
	}
	now := a.now().In(a.loc)
	end, err := ClockToday(cur.EndTime, now)
	if err != nil {
		a.logger.Warn("auto-advance: bad end time, skipping item",
			slog.String("item_id", cur.ID),
			slog.String("end_time", cur.EndTime))
		return false
	}
	if now.Before(end) {
		return false
	}

	if idx == len(items)-1 {
		if err := a.ctrl.ClearCurrent(ctx); err != nil {
			a.logger.Error("auto-advance: clearing current", slog.String("error", err.Error()))
			return false
		}
		a.logger.Info("schedule finished", slog.String("last_item", cur.Title))
		return true
	}

	next := items[idx+1]
	if _, err := a.ctrl.SetCurrent(ctx, next.ID); err != nil {
		a.logger.Error("auto-advance: advancing", slog.String("error", err.Error()))
		return false
	}
	a.logger.Info("auto-advanced to next item",
		slog.String("from", cur.Title),
		slog.String("to", next.Title))
	return true
}
