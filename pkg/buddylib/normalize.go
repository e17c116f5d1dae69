package buddylib

import (
	"fmt"
	"math"
	"time"
)

const (
	activityDateLayout = "2006-01-02"
	activityTimeLayout = "15:04"
)

// NormalizeActivity converts a wire Activity into the common Event envelope.
// Date and time are interpreted in loc (the user's wall clock).
func NormalizeActivity(a Activity, loc *time.Location) (Event, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(activityDateLayout+" "+activityTimeLayout, a.Date+" "+a.Time, loc)
	if err != nil {
		return Event{}, fmt.Errorf("activity %s: invalid date/time %q %q: %w", a.ID, a.Date, a.Time, err)
	}
	dur := a.DurationHours
	if dur < 1 {
		dur = 1
	}
	return Event{
		ID:            a.ID,
		Kind:          KindActivity,
		Title:         a.Title,
		Description:   a.Description,
		Subject:       a.Subject,
		Location:      a.Location,
		StartAt:       start,
		DurationHours: dur,
	}, nil
}

// NormalizeGroup converts a Group with a valid scheduled start/end pair into
// an Event. It returns ErrNoSchedule when either timestamp is missing or
// malformed, or when the end does not come after the start.
func NormalizeGroup(g Group, loc *time.Location) (Event, error) {
	if loc == nil {
		loc = time.Local
	}
	if g.ScheduledStart == "" || g.ScheduledEnd == "" {
		return Event{}, ErrNoSchedule
	}
	start, err := time.Parse(time.RFC3339, g.ScheduledStart)
	if err != nil {
		return Event{}, ErrNoSchedule
	}
	end, err := time.Parse(time.RFC3339, g.ScheduledEnd)
	if err != nil {
		return Event{}, ErrNoSchedule
	}
	if !end.After(start) {
		return Event{}, ErrNoSchedule
	}
	dur := int(math.Round(end.Sub(start).Hours()))
	if dur < 1 {
		dur = 1
	}
	return Event{
		ID:            g.ID,
		Kind:          KindGroupSession,
		Title:         g.Name,
		Description:   g.Description,
		Subject:       g.Subject,
		Location:      g.Location,
		StartAt:       start.In(loc),
		DurationHours: dur,
	}, nil
}
