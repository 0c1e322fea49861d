package store

import (
	"context"
	"famcal/src-server/model"
	"fmt"
	"time"
)

type seedEvent struct {
	title     string
	location  string
	desc      string
	createdBy string
	status    model.EventStatus
	category  string
	dayOffset int
	startHour int
	startMin  int
	endHour   int
	endMin    int
}

var seedEvents = []seedEvent{
	{
		title:     "Family Brunch",
		location:  "Home",
		desc:      "Brunch with Karsen and Dalton.",
		createdBy: "karsen",
		status:    model.StatusApproved,
		category:  "Family",
		dayOffset: 0, startHour: 10, endHour: 11,
	},
	{
		title:     "Soccer Practice (Karsen)",
		location:  "Community Field",
		desc:      "Karsen's soccer practice.",
		createdBy: "karsen",
		status:    model.StatusApproved,
		category:  "Karsen",
		dayOffset: 1, startHour: 13, endHour: 14,
	},
	{
		title:     "Grocery Shopping",
		location:  "Local Supermarket",
		createdBy: "karsen",
		status:    model.StatusPending, // waiting on Dalton
		category:  "Dalton/Karsen",
		dayOffset: 0, startHour: 15, endHour: 16,
	},
	{
		title:     "Dinner with Grandparents",
		location:  "Their place",
		desc:      "Visiting the grandparents for dinner.",
		createdBy: "dalton",
		status:    model.StatusApproved,
		category:  "Family",
		dayOffset: 2, startHour: 18, endHour: 19, endMin: 30,
	},
	{
		title:     "Project Deadline (Dalton)",
		location:  "Work/Home Office",
		desc:      "Final day for project submission.",
		createdBy: "dalton",
		status:    model.StatusApproved,
		category:  "Dalton",
		dayOffset: 3, startHour: 9, endHour: 17,
	},
	{
		title:     "Movie Night Proposal",
		location:  "Living Room",
		desc:      "Dalton suggests a new movie.",
		createdBy: "dalton",
		status:    model.StatusPending, // waiting on Karsen
		category:  "Dalton/Karsen",
		dayOffset: 4, startHour: 20, endHour: 22,
	},
	{
		title:     "Book Club Meeting",
		location:  "Online",
		desc:      "Dalton proposed, Karsen rejected.",
		createdBy: "dalton",
		status:    model.StatusRejected,
		category:  "Dalton/Karsen",
		dayOffset: 5, startHour: 19, endHour: 20,
	},
}

// Seed fills an empty store with the demo household week: both users, mixed
// statuses, dates relative to now. It drives the normal store operations,
// so seeded events behave exactly like user-created ones. The active user
// is reset to the default afterwards.
func Seed(ctx context.Context, s *Store) error {
	now := time.Now().In(s.loc)
	day := func(offset, hour, min int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+offset, hour, min, 0, 0, s.loc)
	}

	for _, seed := range seedEvents {
		s.SwitchActiveUser(seed.createdBy)
		id, err := s.CreateEvent(ctx, EventDraft{
			Title:                seed.title,
			Location:             seed.location,
			Description:          seed.desc,
			Start:                day(seed.dayOffset, seed.startHour, seed.startMin),
			End:                  day(seed.dayOffset, seed.endHour, seed.endMin),
			ParticipantsCategory: seed.category,
		})
		if err != nil {
			return fmt.Errorf("Seed: %w", err)
		}
		if seed.status != model.StatusPending {
			if err := s.UpdateEventStatus(ctx, id, seed.status); err != nil {
				return fmt.Errorf("Seed: %w", err)
			}
		}
	}

	s.SwitchActiveUser(model.DefaultUserKey)
	return nil
}
