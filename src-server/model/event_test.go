package model_test

import (
	"context"
	"database/sql"
	"famcal/src-server/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func TestEvent(t *testing.T) {
	// init db
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())

	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	for _, user := range model.Users {
		if err := user.Upsert(context.Background(), bundb); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Date(2024, 10, 16, 10, 0, 0, 0, time.UTC)
	eventModel := model.Event{
		ID:                   uuid.NewString(),
		Title:                "Family Brunch",
		Location:             "Home",
		StartDateUnixUTC:     start.Unix(),
		EndDateUnixUTC:       start.Add(time.Hour).Unix(),
		ParticipantsCategory: "Family",
		CreatedByID:          model.UserKarsen.ID,
		Status:               model.StatusPending,
		Seq:                  1,
	}
	if err := eventModel.Insert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	// case: event round-trips with its creator relation
	func() {
		eventModelTest := new(model.Event)
		if err := bundb.NewSelect().
			Model(eventModelTest).
			Relation("CreatedBy").
			Where("event.id = ?", eventModel.ID).
			Scan(context.Background()); err != nil {
			t.Fatal(err)
		}
		if eventModelTest.Title != eventModel.Title {
			t.Error("title not preserved")
		}
		if eventModelTest.CreatedBy == nil || eventModelTest.CreatedBy.Name != model.UserKarsen.Name {
			t.Error("creator relation not loaded")
		}
		if eventModelTest.CreatedAt == 0 {
			t.Error("created_at should be assigned on insert")
		}
		if !eventModelTest.StartIn(time.UTC).Equal(start) {
			t.Error("start date not preserved")
		}
	}()

	// case: the embed carries the creator's name and the event id
	func() {
		embed := eventModel.ToDiscordEmbed()
		if embed.Author.Name != model.UserKarsen.Name {
			t.Error("embed author should be the creator")
		}
		if embed.Footer.Text != eventModel.ID {
			t.Error("embed footer should carry the event id")
		}
	}()
}

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.EventStatus
		wantErr bool
	}{
		{"PENDING", model.StatusPending, false},
		{"approved", model.StatusApproved, false},
		{" Rejected ", model.StatusRejected, false},
		{"", "", true},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := model.ParseEventStatus(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEventStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEventStatus(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
