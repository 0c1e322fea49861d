// Package filter selects and orders subsets of an event snapshot. It holds
// no state; every screen reads through it with a different Options value.
package filter

import (
	"famcal/src-server/model"
	"sort"
	"strings"
	"time"
)

type ViewMode uint8

const (
	ViewNone ViewMode = iota
	ViewDay
	ViewWeek
	ViewMonth
)

func ParseViewMode(raw string) (ViewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ViewNone, true
	case "day":
		return ViewDay, true
	case "week":
		return ViewWeek, true
	case "month":
		return ViewMonth, true
	}
	return ViewNone, false
}

func (v ViewMode) String() string {
	switch v {
	case ViewDay:
		return "Day"
	case ViewWeek:
		return "Week"
	case ViewMonth:
		return "Month"
	default:
		return "None"
	}
}

// Options are combined with logical AND; zero values mean "no constraint".
// SpecificDay takes priority over ViewMode. Date anchors the ViewMode
// window and defaults to now.
type Options struct {
	Status             model.EventStatus
	CreatedByUserID    string
	NotCreatedByUserID string
	SpecificDay        time.Time
	ViewMode           ViewMode
	Date               time.Time
}

// Apply filters a snapshot and returns it sorted ascending by start time.
// The sort is stable, so events sharing a start instant keep the
// snapshot's insertion order. Calendar-day matching uses wall-clock
// dates in loc (nil means the system location).
func Apply(events []model.Event, opts Options, loc *time.Location) []model.Event {
	if loc == nil {
		loc = time.Local
	}

	anchor := opts.Date
	if anchor.IsZero() {
		anchor = time.Now()
	}
	anchor = midnight(anchor.In(loc))

	out := make([]model.Event, 0, len(events))
	for _, event := range events {
		if opts.Status != "" && event.Status != opts.Status {
			continue
		}
		if opts.CreatedByUserID != "" && event.CreatedByID != opts.CreatedByUserID {
			continue
		}
		if opts.NotCreatedByUserID != "" && event.CreatedByID == opts.NotCreatedByUserID {
			continue
		}

		start := event.StartIn(loc)
		switch {
		case !opts.SpecificDay.IsZero():
			if !sameDay(start, opts.SpecificDay.In(loc)) {
				continue
			}
		case opts.ViewMode == ViewDay:
			if !sameDay(start, anchor) {
				continue
			}
		case opts.ViewMode == ViewWeek:
			// Sunday through Saturday 23:59:59.999; an event on the
			// following Sunday 00:00 falls in the next window
			weekStart := anchor.AddDate(0, 0, -int(anchor.Weekday()))
			weekEnd := weekStart.AddDate(0, 0, 7)
			if start.Before(weekStart) || !start.Before(weekEnd) {
				continue
			}
		case opts.ViewMode == ViewMonth:
			if start.Year() != anchor.Year() || start.Month() != anchor.Month() {
				continue
			}
		}

		out = append(out, event)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDateUnixUTC < out[j].StartDateUnixUTC
	})
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
