package store_test

import (
	"context"
	"database/sql"
	"famcal/src-server/filter"
	"famcal/src-server/model"
	"famcal/src-server/store"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	bundb := bun.NewDB(db, sqlitedialect.New())

	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	for _, user := range model.Users {
		if err := user.Upsert(context.Background(), bundb); err != nil {
			t.Fatal(err)
		}
	}

	return store.New(bundb, time.UTC)
}

func draftAt(title string, start time.Time) store.EventDraft {
	return store.EventDraft{
		Title: title,
		Start: start,
		End:   start.Add(time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.CreateEvent(ctx, draftAt("Family Brunch", time.Now())); err != nil {
		t.Fatal(err)
	}

	after, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("want %d events, got %d", len(before)+1, len(after))
	}
	created := after[len(after)-1]
	if created.Status != model.StatusPending {
		t.Errorf("new event should be PENDING, got %s", created.Status)
	}
	if created.CreatedByID != model.DefaultUserKey {
		t.Errorf("new event should be attributed to the active user, got %s", created.CreatedByID)
	}
}

func TestSwitchActiveUserAttribution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	firstID, err := s.CreateEvent(ctx, draftAt("Karsen's event", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	s.SwitchActiveUser("dalton")
	if s.ActiveUser().ID != "dalton" {
		t.Fatalf("active user should be dalton, got %s", s.ActiveUser().ID)
	}

	secondID, err := s.CreateEvent(ctx, draftAt("Dalton's event", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	byID := make(map[string]model.Event)
	for _, event := range events {
		byID[event.ID] = event
	}

	// authorship is fixed at creation time, switching does not rewrite it
	if byID[firstID].CreatedByID != "karsen" {
		t.Errorf("first event should stay karsen's, got %s", byID[firstID].CreatedByID)
	}
	if byID[secondID].CreatedByID != "dalton" {
		t.Errorf("second event should be dalton's, got %s", byID[secondID].CreatedByID)
	}
}

func TestSwitchActiveUserUnknownKey(t *testing.T) {
	s := newTestStore(t)

	s.SwitchActiveUser("dalton")
	s.SwitchActiveUser("nonexistent")

	if s.ActiveUser().ID != model.DefaultUserKey {
		t.Errorf("unknown key should fall back to %s, got %s", model.DefaultUserKey, s.ActiveUser().ID)
	}
}

func TestUpdateEventStatusLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateEvent(ctx, draftAt("Movie Night", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateEventStatus(ctx, id, model.StatusApproved); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateEventStatus(ctx, id, model.StatusRejected); err != nil {
		t.Fatal(err)
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("event should still exist, got %d events", len(events))
	}
	if events[0].Status != model.StatusRejected {
		t.Errorf("want REJECTED, got %s", events[0].Status)
	}
}

func TestUpdateEventStatusUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpdateEventStatus(ctx, "no-such-id", model.StatusApproved); err != nil {
		t.Errorf("unknown id should be a silent no-op, got %v", err)
	}
}

func TestDeleteEventIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateEvent(ctx, draftAt("Book Club", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteEvent(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEvent(ctx, id); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("want empty store, got %d events", len(events))
	}
}

func TestEventsForDateExcludesNonApproved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC)

	if _, err := s.CreateEvent(ctx, draftAt("Pending", day.Add(9*time.Hour))); err != nil {
		t.Fatal(err)
	}
	approvedID, err := s.CreateEvent(ctx, draftAt("Approved", day.Add(15*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateEventStatus(ctx, approvedID, model.StatusApproved); err != nil {
		t.Fatal(err)
	}

	events, err := s.EventsForDate(ctx, day)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != approvedID {
		t.Errorf("want only the approved event, got %v", events)
	}
}

func TestEventsFilteredPendingForOtherUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateEvent(ctx, draftAt("Karsen's proposal", time.Now())); err != nil {
		t.Fatal(err)
	}
	s.SwitchActiveUser("dalton")
	daltonID, err := s.CreateEvent(ctx, draftAt("Dalton's proposal", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	// what karsen's notifications screen asks for: pending, not mine
	events, err := s.EventsFiltered(ctx, filter.Options{
		Status:             model.StatusPending,
		NotCreatedByUserID: "karsen",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != daltonID {
		t.Errorf("want only dalton's proposal, got %v", events)
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, s); err != nil {
		t.Fatal(err)
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 7 {
		t.Fatalf("want 7 seeded events, got %d", len(events))
	}

	counts := make(map[model.EventStatus]int)
	for _, event := range events {
		counts[event.Status]++
	}
	if counts[model.StatusApproved] != 4 || counts[model.StatusPending] != 2 || counts[model.StatusRejected] != 1 {
		t.Errorf("unexpected status mix: %v", counts)
	}

	if s.ActiveUser().ID != model.DefaultUserKey {
		t.Errorf("seed should reset the active user to %s, got %s", model.DefaultUserKey, s.ActiveUser().ID)
	}
}
