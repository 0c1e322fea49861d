// Package store owns the canonical event list and the active-user pointer.
// All mutations go through it; every view reads from it through the filter
// engine.
package store

import (
	"context"
	"famcal/src-server/filter"
	"famcal/src-server/model"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Store struct {
	db  *bun.DB
	loc *time.Location

	mu     sync.RWMutex
	active model.User

	seq atomic.Int64
}

func New(db *bun.DB, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	defaultUser, _ := model.UserByKey(model.DefaultUserKey)
	return &Store{
		db:     db,
		loc:    loc,
		active: defaultUser,
	}
}

func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) ActiveUser() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SwitchActiveUser points authorship and "mine"/"not mine" filters at the
// user matching key. An unknown key is not an error: it logs a warning and
// falls back to the default user.
func (s *Store) SwitchActiveUser(key string) {
	user, ok := model.UserByKey(key)
	if !ok {
		slog.Warn("unknown user key, falling back to default user",
			"key", key,
			"default", model.DefaultUserKey)
		user, _ = model.UserByKey(model.DefaultUserKey)
	}
	s.mu.Lock()
	s.active = user
	s.mu.Unlock()
}

// EventDraft is a creation input: everything the proposer fills in, nothing
// the store assigns itself (id, status, creator).
type EventDraft struct {
	Title                string
	Location             string
	Description          string
	Start                time.Time
	End                  time.Time
	AllDay               bool
	ParticipantsCategory string
}

// CreateEvent appends a new PENDING event attributed to the active user at
// call time and returns its id. The draft is stored as given; input
// validation belongs to the caller.
func (s *Store) CreateEvent(ctx context.Context, draft EventDraft) (string, error) {
	createdBy := s.ActiveUser()

	event := &model.Event{
		ID:                   uuid.NewString(),
		Title:                draft.Title,
		Location:             draft.Location,
		Description:          draft.Description,
		StartDateUnixUTC:     draft.Start.UTC().Unix(),
		EndDateUnixUTC:       draft.End.UTC().Unix(),
		AllDay:               draft.AllDay,
		ParticipantsCategory: draft.ParticipantsCategory,
		CreatedByID:          createdBy.ID,
		Status:               model.StatusPending,
		Seq:                  s.seq.Add(1),
	}
	if err := event.Insert(ctx, s.db); err != nil {
		return "", fmt.Errorf("(*Store).CreateEvent: %w", err)
	}
	return event.ID, nil
}

// UpdateEventStatus replaces the status of the event with the given id.
// An unknown id is a silent no-op; the previous status is not consulted.
func (s *Store) UpdateEventStatus(ctx context.Context, id string, status model.EventStatus) error {
	if _, err := s.db.NewUpdate().
		Model((*model.Event)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Store).UpdateEventStatus: %w", err)
	}
	return nil
}

// DeleteEvent removes the event permanently. An unknown id is a silent
// no-op, which makes the call idempotent.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.db.NewDelete().
		Model((*model.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Store).DeleteEvent: %w", err)
	}
	return nil
}

// Events returns a snapshot of the full list in insertion order, the order
// the filter engine uses to break start-time ties.
func (s *Store) Events(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := s.db.NewSelect().
		Model(&events).
		Relation("CreatedBy").
		Order("event.seq ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).Events: %w", err)
	}
	return events, nil
}

// EventsFiltered runs the filter engine over the live list.
func (s *Store) EventsFiltered(ctx context.Context, opts filter.Options) ([]model.Event, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("(*Store).EventsFiltered: %w", err)
	}
	return filter.Apply(events, opts, s.loc), nil
}

// EventsForDate returns the APPROVED events whose start falls on the given
// calendar day, ascending by start. This is what the month grid and day
// list render.
func (s *Store) EventsForDate(ctx context.Context, day time.Time) ([]model.Event, error) {
	return s.EventsFiltered(ctx, filter.Options{
		Status:      model.StatusApproved,
		SpecificDay: day,
	})
}
