package eventdeck

import (
	"fmt"
	"time"
)

// clockLayout is the "HH:MM" format of schedule item times.
const clockLayout = "15:04"

// ClockToday anchors an "HH:MM" wall-clock string to now's date, in
// now's location.
func ClockToday(clock string, now time.Time) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing clock %q: %w", clock, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// Remaining is the time left until the item's end time today, floored
// at zero.
func Remaining(item ScheduleItem, now time.Time) (time.Duration, error) {
	end, err := ClockToday(item.EndTime, now)
	if err != nil {
		return 0, err
	}
	return max(0, end.Sub(now)), nil
}

// Countdown is the duration the views should display: the current
// item's remaining time, or zero when nothing is current, the event is
// paused, or the end time is malformed. Derived state, recomputed on
// every call and never persisted.
func Countdown(items []ScheduleItem, st Settings, now time.Time) time.Duration {
	if st.IsPaused {
		return 0
	}
	idx := currentIndex(items)
	if idx < 0 {
		return 0
	}
	d, err := Remaining(items[idx], now)
	if err != nil {
		return 0
	}
	return d
}
