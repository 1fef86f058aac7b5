package eventdeck

import (
	"context"
	"slices"
)

// ScheduleRepo is the storage capability the control operations need.
type ScheduleRepo interface {
	// Schedule returns the items in display order.
	Schedule(ctx context.Context) ([]ScheduleItem, error)
	// ReplaceSchedule swaps in a new ordered item list.
	ReplaceSchedule(ctx context.Context, items []ScheduleItem) error
}

// SettingsRepo stores the settings singleton.
type SettingsRepo interface {
	Settings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, s Settings) error
}

// Controller implements the schedule control operations: which single
// item is current, and the global pause flag.
type Controller struct {
	schedule ScheduleRepo
	settings SettingsRepo
}

func NewController(schedule ScheduleRepo, settings SettingsRepo) *Controller {
	return &Controller{schedule: schedule, settings: settings}
}

// currentIndex returns the position of the current item, or -1.
func currentIndex(items []ScheduleItem) int {
	for i := range items {
		if items[i].IsCurrent {
			return i
		}
	}
	return -1
}

// markCurrent clears the flag everywhere and, for idx >= 0, sets it on
// items[idx]. Every flag write goes through here, which keeps the
// at-most-one-current invariant in a single place.
func markCurrent(items []ScheduleItem, idx int) {
	for i := range items {
		items[i].IsCurrent = i == idx
	}
}

// Next moves the current flag one item forward. With no current item
// the first item becomes current. At the last item it stays put; there
// is no wraparound and no error. Returns the new current item, or nil
// for an empty schedule.
func (c *Controller) Next(ctx context.Context) (*ScheduleItem, error) {
	return c.step(ctx, func(idx, n int) int {
		if idx < 0 {
			return 0
		}
		return min(n-1, idx+1)
	})
}

// Previous moves the current flag one item back, stopping at the first
// item. With no current item the first item becomes current.
func (c *Controller) Previous(ctx context.Context) (*ScheduleItem, error) {
	return c.step(ctx, func(idx, _ int) int {
		if idx < 0 {
			return 0
		}
		return max(0, idx-1)
	})
}

func (c *Controller) step(ctx context.Context, move func(idx, n int) int) (*ScheduleItem, error) {
	items, err := c.schedule.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	idx := move(currentIndex(items), len(items))
	markCurrent(items, idx)
	if err := c.schedule.ReplaceSchedule(ctx, items); err != nil {
		return nil, err
	}
	cur := items[idx]
	return &cur, nil
}

// SetCurrent makes the item with the given id current, wherever it sits
// in the list. Returns ErrNotFound and leaves the schedule untouched
// when the id is unknown.
func (c *Controller) SetCurrent(ctx context.Context, id string) (*ScheduleItem, error) {
	items, err := c.schedule.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(items, func(it ScheduleItem) bool { return it.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}
	markCurrent(items, idx)
	if err := c.schedule.ReplaceSchedule(ctx, items); err != nil {
		return nil, err
	}
	cur := items[idx]
	return &cur, nil
}

// ClearCurrent removes the flag from every item.
func (c *Controller) ClearCurrent(ctx context.Context) error {
	items, err := c.schedule.Schedule(ctx)
	if err != nil {
		return err
	}
	markCurrent(items, -1)
	return c.schedule.ReplaceSchedule(ctx, items)
}

// TogglePause flips the pause flag on settings and returns the new
// value. Pausing freezes the countdown and auto-advance; it never hides
// the current item.
func (c *Controller) TogglePause(ctx context.Context) (bool, error) {
	st, err := c.settings.Settings(ctx)
	if err != nil {
		return false, err
	}
	st.IsPaused = !st.IsPaused
	if err := c.settings.PutSettings(ctx, st); err != nil {
		return false, err
	}
	return st.IsPaused, nil
}

// Reorder rearranges the schedule into the given id order, renumbering
// the stored order fields 0..n-1. The current flag travels with its
// item. Returns ErrInvalidOrder unless order is an exact permutation of
// the stored ids; a partial or foreign list never silently drops items.
func (c *Controller) Reorder(ctx context.Context, order []string) ([]ScheduleItem, error) {
	items, err := c.schedule.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	if len(order) != len(items) {
		return nil, ErrInvalidOrder
	}
	byID := make(map[string]ScheduleItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	next := make([]ScheduleItem, 0, len(items))
	seen := make(map[string]bool, len(order))
	for i, id := range order {
		it, ok := byID[id]
		if !ok || seen[id] {
			return nil, ErrInvalidOrder
		}
		seen[id] = true
		it.Order = i
		next = append(next, it)
	}
	if err := c.schedule.ReplaceSchedule(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}
