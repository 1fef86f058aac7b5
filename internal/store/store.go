// Package store persists the dashboard state as flat JSON documents
// under a data directory, one file per collection. All state is held
// in memory behind a single lock and rewritten on change; the files
// double as the on-disk exchange format for state snapshots.
// Concurrent admin writes race as last-write-wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

const (
	scheduleFile = "schedule.json"
	phasesFile   = "phases.json"
	peopleFile   = "people.json"
	groupsFile   = "groups.json"
	settingsFile = "settings.json"
	messagesFile = "messages.json"
	adminsFile   = "admins.json"
)

// FileStore is the single storage backend. It implements the domain
// repository interfaces plus the CRUD the HTTP handlers need.
type FileStore struct {
	dir string

	mu sync.RWMutex
	// schedule is kept in display order; order fields match positions
	// after every reorder.
	schedule []eventdeck.ScheduleItem
	phases   []eventdeck.Phase
	people   []eventdeck.Person
	groups   []eventdeck.Group
	settings eventdeck.Settings
	messages map[eventdeck.Audience]eventdeck.Message
	admins   []eventdeck.Admin
}

// Open loads every document found under dir, creating the directory
// if needed. Missing files are not an error; the zero state stands in
// until something is written.
func Open(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s := &FileStore{
		dir:      dir,
		settings: eventdeck.DefaultSettings(),
		messages: map[eventdeck.Audience]eventdeck.Message{},
	}
	for _, doc := range []struct {
		file string
		into any
	}{
		{scheduleFile, &s.schedule},
		{phasesFile, &s.phases},
		{peopleFile, &s.people},
		{groupsFile, &s.groups},
		{settingsFile, &s.settings},
		{messagesFile, &s.messages},
		{adminsFile, &s.admins},
	} {
		if err := s.readDoc(doc.file, doc.into); err != nil {
			return nil, err
		}
	}
	if s.messages == nil {
		s.messages = map[eventdeck.Audience]eventdeck.Message{}
	}
	sortSchedule(s.schedule)
	return s, nil
}

func (s *FileStore) readDoc(name string, into any) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(into); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// writeDoc rewrites one document in place. Callers hold the write
// lock.
func (s *FileStore) writeDoc(name string, doc any) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}

// cloneSlice copies a collection for hand-out. The result is non-nil
// even when empty so JSON responses render [] rather than null.
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func sortSchedule(items []eventdeck.ScheduleItem) {
	slices.SortStableFunc(items, func(a, b eventdeck.ScheduleItem) int { return a.Order - b.Order })
}

// Ping reports whether the data directory is still reachable.
func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// --- schedule ---

func (s *FileStore) Schedule(ctx context.Context) ([]eventdeck.ScheduleItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.schedule), nil
}

func (s *FileStore) ReplaceSchedule(ctx context.Context, items []eventdeck.ScheduleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = cloneSlice(items)
	return s.writeDoc(scheduleFile, s.schedule)
}

// CreateScheduleItem assigns the id and appends the item after the
// highest existing order. New items are never current.
func (s *FileStore) CreateScheduleItem(ctx context.Context, item eventdeck.ScheduleItem) (eventdeck.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = uuid.NewString()
	item.IsCurrent = false
	item.Order = 0
	for _, it := range s.schedule {
		if it.Order >= item.Order {
			item.Order = it.Order + 1
		}
	}
	if item.People == nil {
		item.People = []string{}
	}
	if item.Groups == nil {
		item.Groups = []string{}
	}
	s.schedule = append(s.schedule, item)
	if err := s.writeDoc(scheduleFile, s.schedule); err != nil {
		return eventdeck.ScheduleItem{}, err
	}
	return item, nil
}

func (s *FileStore) UpdateScheduleItem(ctx context.Context, id string, patch eventdeck.ScheduleItemPatch) (eventdeck.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.schedule {
		if s.schedule[i].ID != id {
			continue
		}
		s.schedule[i] = patch.Apply(s.schedule[i])
		if err := s.writeDoc(scheduleFile, s.schedule); err != nil {
			return eventdeck.ScheduleItem{}, err
		}
		return s.schedule[i], nil
	}
	return eventdeck.ScheduleItem{}, eventdeck.ErrNotFound
}

func (s *FileStore) DeleteScheduleItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.schedule, func(it eventdeck.ScheduleItem) bool { return it.ID == id })
	if idx < 0 {
		return eventdeck.ErrNotFound
	}
	s.schedule = slices.Delete(s.schedule, idx, idx+1)
	return s.writeDoc(scheduleFile, s.schedule)
}

// --- phases ---

func (s *FileStore) Phases(ctx context.Context) ([]eventdeck.Phase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := cloneSlice(s.phases)
	slices.SortStableFunc(out, func(a, b eventdeck.Phase) int { return a.Order - b.Order })
	return out, nil
}

func (s *FileStore) CreatePhase(ctx context.Context, p eventdeck.Phase) (eventdeck.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.phases = append(s.phases, p)
	if err := s.writeDoc(phasesFile, s.phases); err != nil {
		return eventdeck.Phase{}, err
	}
	return p, nil
}

// UpdatePhase replaces everything but the id.
func (s *FileStore) UpdatePhase(ctx context.Context, id string, p eventdeck.Phase) (eventdeck.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.phases {
		if s.phases[i].ID != id {
			continue
		}
		p.ID = id
		s.phases[i] = p
		if err := s.writeDoc(phasesFile, s.phases); err != nil {
			return eventdeck.Phase{}, err
		}
		return p, nil
	}
	return eventdeck.Phase{}, eventdeck.ErrNotFound
}

func (s *FileStore) DeletePhase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.phases, func(p eventdeck.Phase) bool { return p.ID == id })
	if idx < 0 {
		return eventdeck.ErrNotFound
	}
	s.phases = slices.Delete(s.phases, idx, idx+1)
	return s.writeDoc(phasesFile, s.phases)
}

// --- people ---

func (s *FileStore) People(ctx context.Context) ([]eventdeck.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.people), nil
}

func (s *FileStore) CreatePerson(ctx context.Context, p eventdeck.Person) (eventdeck.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.people = append(s.people, p)
	if err := s.writeDoc(peopleFile, s.people); err != nil {
		return eventdeck.Person{}, err
	}
	return p, nil
}

func (s *FileStore) UpdatePerson(ctx context.Context, id string, p eventdeck.Person) (eventdeck.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.people {
		if s.people[i].ID != id {
			continue
		}
		p.ID = id
		s.people[i] = p
		if err := s.writeDoc(peopleFile, s.people); err != nil {
			return eventdeck.Person{}, err
		}
		return p, nil
	}
	return eventdeck.Person{}, eventdeck.ErrNotFound
}

func (s *FileStore) DeletePerson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.people, func(p eventdeck.Person) bool { return p.ID == id })
	if idx < 0 {
		return eventdeck.ErrNotFound
	}
	s.people = slices.Delete(s.people, idx, idx+1)
	return s.writeDoc(peopleFile, s.people)
}

// --- groups ---

func (s *FileStore) Groups(ctx context.Context) ([]eventdeck.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.groups), nil
}

func (s *FileStore) CreateGroup(ctx context.Context, g eventdeck.Group) (eventdeck.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.NewString()
	if g.MemberIDs == nil {
		g.MemberIDs = []string{}
	}
	s.groups = append(s.groups, g)
	if err := s.writeDoc(groupsFile, s.groups); err != nil {
		return eventdeck.Group{}, err
	}
	return g, nil
}

func (s *FileStore) UpdateGroup(ctx context.Context, id string, g eventdeck.Group) (eventdeck.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].ID != id {
			continue
		}
		g.ID = id
		if g.MemberIDs == nil {
			g.MemberIDs = []string{}
		}
		s.groups[i] = g
		if err := s.writeDoc(groupsFile, s.groups); err != nil {
			return eventdeck.Group{}, err
		}
		return g, nil
	}
	return eventdeck.Group{}, eventdeck.ErrNotFound
}

func (s *FileStore) DeleteGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.groups, func(g eventdeck.Group) bool { return g.ID == id })
	if idx < 0 {
		return eventdeck.ErrNotFound
	}
	s.groups = slices.Delete(s.groups, idx, idx+1)
	return s.writeDoc(groupsFile, s.groups)
}

// --- settings ---

func (s *FileStore) Settings(ctx context.Context) (eventdeck.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *FileStore) PutSettings(ctx context.Context, st eventdeck.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
	return s.writeDoc(settingsFile, s.settings)
}

// MergeSettings applies the supplied fields over the stored settings
// and returns the result.
func (s *FileStore) MergeSettings(ctx context.Context, patch eventdeck.SettingsPatch) (eventdeck.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = patch.Apply(s.settings)
	if err := s.writeDoc(settingsFile, s.settings); err != nil {
		return eventdeck.Settings{}, err
	}
	return s.settings, nil
}

// --- messages ---

func (s *FileStore) Message(ctx context.Context, aud eventdeck.Audience) (eventdeck.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messages[aud], nil
}

func (s *FileStore) PutMessage(ctx context.Context, aud eventdeck.Audience, msg eventdeck.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[aud] = msg
	return s.writeDoc(messagesFile, s.messages)
}

// --- admins ---

func (s *FileStore) AdminByUsername(ctx context.Context, username string) (eventdeck.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return eventdeck.Admin{}, eventdeck.ErrNotFound
}

func (s *FileStore) SetAdminPassword(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admins {
		if s.admins[i].Username == username {
			s.admins[i].PasswordHash = passwordHash
			return s.writeDoc(adminsFile, s.admins)
		}
	}
	return eventdeck.ErrNotFound
}

// --- state snapshots ---

// State assembles the snapshot the views poll and the external sync
// pushes.
func (s *FileStore) State(ctx context.Context) (eventdeck.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phases := cloneSlice(s.phases)
	slices.SortStableFunc(phases, func(a, b eventdeck.Phase) int { return a.Order - b.Order })
	return eventdeck.State{
		Settings:  s.settings,
		Phases:    phases,
		Schedule:  cloneSlice(s.schedule),
		Timestamp: eventdeck.Timestamp(time.Now()),
	}, nil
}

// ReplaceState swaps in collections from a snapshot. Empty collections
// and zero settings are skipped rather than wiping local data, so a
// partial snapshot only touches what it carries.
func (s *FileStore) ReplaceState(ctx context.Context, st eventdeck.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.Settings != (eventdeck.Settings{}) {
		s.settings = st.Settings
		if err := s.writeDoc(settingsFile, s.settings); err != nil {
			return err
		}
	}
	if len(st.Phases) > 0 {
		s.phases = cloneSlice(st.Phases)
		if err := s.writeDoc(phasesFile, s.phases); err != nil {
			return err
		}
	}
	if len(st.Schedule) > 0 {
		items := cloneSlice(st.Schedule)
		sortSchedule(items)
		normalizeCurrent(items)
		s.schedule = items
		if err := s.writeDoc(scheduleFile, s.schedule); err != nil {
			return err
		}
	}
	return nil
}

// normalizeCurrent keeps at most one current flag, the first in
// display order. Snapshots from elsewhere may carry several.
func normalizeCurrent(items []eventdeck.ScheduleItem) {
	found := false
	for i := range items {
		if !items[i].IsCurrent {
			continue
		}
		if found {
			items[i].IsCurrent = false
		}
		found = true
	}
}

// EnsureDefaults seeds the settings document, the stock phases and the
// admin account on first start. Safe to call on every boot.
func (s *FileStore) EnsureDefaults(ctx context.Context, logger *slog.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(filepath.Join(s.dir, settingsFile)); errors.Is(err, os.ErrNotExist) {
		if err := s.writeDoc(settingsFile, s.settings); err != nil {
			return err
		}
		logger.Info("wrote default settings")
	}
	if len(s.phases) == 0 {
		s.phases = defaultPhases()
		if err := s.writeDoc(phasesFile, s.phases); err != nil {
			return err
		}
		logger.Info("created default phases", slog.Int("count", len(s.phases)))
	}
	if len(s.admins) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing default admin password: %w", err)
		}
		s.admins = []eventdeck.Admin{{
			ID:           uuid.NewString(),
			Username:     "admin",
			PasswordHash: string(hash),
			CreatedAt:    eventdeck.Timestamp(time.Now()),
		}}
		if err := s.writeDoc(adminsFile, s.admins); err != nil {
			return err
		}
		logger.Info("created default admin", slog.String("username", "admin"))
	}
	return nil
}

func defaultPhases() []eventdeck.Phase {
	return []eventdeck.Phase{
		{ID: uuid.NewString(), Name: "Setup", Color: "#3b82f6", Order: 0},
		{ID: uuid.NewString(), Name: "Live", Color: "#ef4444", Order: 1},
		{ID: uuid.NewString(), Name: "Break", Color: "#f59e0b", Order: 2},
		{ID: uuid.NewString(), Name: "Wrap-up", Color: "#71717a", Order: 3},
	}
}
