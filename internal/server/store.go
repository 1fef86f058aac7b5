package server

import (
	"context"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// Store is the persistence surface the handlers consume. The file
// store implements it; declared here so tests can swap in anything
// that fits. Lookup failures surface as eventdeck.ErrNotFound.
type Store interface {
	Schedule(ctx context.Context) ([]eventdeck.ScheduleItem, error)
	CreateScheduleItem(ctx context.Context, item eventdeck.ScheduleItem) (eventdeck.ScheduleItem, error)
	UpdateScheduleItem(ctx context.Context, id string, patch eventdeck.ScheduleItemPatch) (eventdeck.ScheduleItem, error)
	DeleteScheduleItem(ctx context.Context, id string) error

	Phases(ctx context.Context) ([]eventdeck.Phase, error)
	CreatePhase(ctx context.Context, p eventdeck.Phase) (eventdeck.Phase, error)
	UpdatePhase(ctx context.Context, id string, p eventdeck.Phase) (eventdeck.Phase, error)
	DeletePhase(ctx context.Context, id string) error

	People(ctx context.Context) ([]eventdeck.Person, error)
	CreatePerson(ctx context.Context, p eventdeck.Person) (eventdeck.Person, error)
	UpdatePerson(ctx context.Context, id string, p eventdeck.Person) (eventdeck.Person, error)
	DeletePerson(ctx context.Context, id string) error

	Groups(ctx context.Context) ([]eventdeck.Group, error)
	CreateGroup(ctx context.Context, g eventdeck.Group) (eventdeck.Group, error)
	UpdateGroup(ctx context.Context, id string, g eventdeck.Group) (eventdeck.Group, error)
	DeleteGroup(ctx context.Context, id string) error

	Settings(ctx context.Context) (eventdeck.Settings, error)
	MergeSettings(ctx context.Context, patch eventdeck.SettingsPatch) (eventdeck.Settings, error)

	AdminByUsername(ctx context.Context, username string) (eventdeck.Admin, error)
	SetAdminPassword(ctx context.Context, username, passwordHash string) error

	State(ctx context.Context) (eventdeck.State, error)
	ReplaceState(ctx context.Context, st eventdeck.State) error

	Ping(ctx context.Context) error
}
