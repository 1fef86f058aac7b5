// Package eventdeck defines the core domain of the event dashboard:
// the ordered schedule with its single current item, phases, people and
// groups, display settings, and audience-scoped broadcast messages.
//
// Control and messaging logic operates through small repository
// interfaces so it can be exercised without a filesystem behind it.
package eventdeck

import "time"

// TimestampLayout is the storage and wire format for timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t in UTC for storage.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ScheduleItem is one row of the event program. StartTime and EndTime
// are wall-clock "HH:MM" strings interpreted on the current day in the
// event timezone. At most one item carries the current flag; control
// operations own that flag, reorder owns the stored order.
type ScheduleItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	PhaseID     string   `json:"phase_id"`
	Notes       string   `json:"notes"`
	Order       int      `json:"order"`
	IsCurrent   bool     `json:"is_current"`
	People      []string `json:"people"`
	Groups      []string `json:"groups"`
}

// Phase is a color-coded label applied to schedule items.
type Phase struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// Person is a named participant that schedule items can reference.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Color string `json:"color,omitempty"`
}

// Group is a named set of people. Membership is a plain id list;
// dangling ids are tolerated and filtered at render time.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color,omitempty"`
	MemberIDs []string `json:"member_ids"`
}

// Settings is the singleton display record shared by every view.
// Updates are shallow merges: see SettingsPatch.
type Settings struct {
	EventName       string `json:"event_name"`
	EventDate       string `json:"event_date"`
	PrimaryColor    string `json:"primary_color"`
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
	SurfaceColor    string `json:"surface_color"`
	TextColor       string `json:"text_color"`
	IsPaused        bool   `json:"is_paused"`
	ShowCountdown   bool   `json:"show_countdown"`
	AutoScroll      bool   `json:"auto_scroll"`
	AutoAdvance     bool   `json:"auto_advance"`
}

// DefaultSettings is the record seeded on first boot.
func DefaultSettings() Settings {
	return Settings{
		EventName:       "Event Dashboard",
		PrimaryColor:    "#3b82f6",
		AccentColor:     "#ef4444",
		BackgroundColor: "#09090b",
		SurfaceColor:    "#18181b",
		TextColor:       "#fafafa",
		ShowCountdown:   true,
		AutoScroll:      true,
		AutoAdvance:     true,
	}
}

// SettingsPatch is a partial settings update. Nil fields keep their
// stored value.
type SettingsPatch struct {
	EventName       *string `json:"event_name"`
	EventDate       *string `json:"event_date"`
	PrimaryColor    *string `json:"primary_color"`
	AccentColor     *string `json:"accent_color"`
	BackgroundColor *string `json:"background_color"`
	SurfaceColor    *string `json:"surface_color"`
	TextColor       *string `json:"text_color"`
	IsPaused        *bool   `json:"is_paused"`
	ShowCountdown   *bool   `json:"show_countdown"`
	AutoScroll      *bool   `json:"auto_scroll"`
	AutoAdvance     *bool   `json:"auto_advance"`
}

// Apply shallow-merges the patch over s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.EventName != nil {
		s.EventName = *p.EventName
	}
	if p.EventDate != nil {
		s.EventDate = *p.EventDate
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = *p.PrimaryColor
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
	if p.SurfaceColor != nil {
		s.SurfaceColor = *p.SurfaceColor
	}
	if p.TextColor != nil {
		s.TextColor = *p.TextColor
	}
	if p.IsPaused != nil {
		s.IsPaused = *p.IsPaused
	}
	if p.ShowCountdown != nil {
		s.ShowCountdown = *p.ShowCountdown
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.AutoAdvance != nil {
		s.AutoAdvance = *p.AutoAdvance
	}
	return s
}

// ScheduleItemPatch is a partial item update from the edit form. The
// current flag and the stored order are deliberately absent: the flag
// belongs to the control operations, the order to reorder.
type ScheduleItemPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	StartTime   *string   `json:"start_time"`
	EndTime     *string   `json:"end_time"`
	PhaseID     *string   `json:"phase_id"`
	Notes       *string   `json:"notes"`
	People      *[]string `json:"people"`
	Groups      *[]string `json:"groups"`
}

// Apply shallow-merges the patch over it and returns the result.
func (p ScheduleItemPatch) Apply(it ScheduleItem) ScheduleItem {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.StartTime != nil {
		it.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		it.EndTime = *p.EndTime
	}
	if p.PhaseID != nil {
		it.PhaseID = *p.PhaseID
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.People != nil {
		it.People = *p.People
	}
	if p.Groups != nil {
		it.Groups = *p.Groups
	}
	return it
}

// Admin is a dashboard administrator account.
type Admin struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// State is the full snapshot exchanged with the external state API and
// served to the dashboard views in one request.
type State struct {
	Settings  Settings       `json:"settings"`
	Phases    []Phase        `json:"phases"`
	Schedule  []ScheduleItem `json:"schedule"`
	Timestamp string         `json:"timestamp,omitempty"`
}
