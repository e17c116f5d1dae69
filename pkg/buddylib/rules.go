package buddylib

import (
	"fmt"
	"strings"
	"time"
)

// ReminderRule is a fixed lead time before an event's start at which a
// reminder should be dispatched.
type ReminderRule struct {
	// Label is the human-readable rule name, also part of timer and dedup keys.
	Label string
	// Lead is how long before the event start the reminder fires.
	Lead time.Duration
}

// FireAt returns the instant this rule fires for an event starting at start.
func (r ReminderRule) FireAt(start time.Time) time.Time {
	return start.Add(-r.Lead)
}

// DefaultRules is the ordered rule set applied to every upcoming event.
func DefaultRules() []ReminderRule {
	return []ReminderRule{
		{Label: "23 hours before", Lead: 23 * time.Hour},
		{Label: "5 hours before", Lead: 5 * time.Hour},
		{Label: "1 hour before", Lead: time.Hour},
		{Label: "5 minutes before", Lead: 5 * time.Minute},
	}
}

// DefaultSubject builds the reminder email subject for an event and rule.
func DefaultSubject(ev Event, rule ReminderRule) string {
	kind := "Activity"
	if ev.Kind == KindGroupSession {
		kind = "Study Group Session"
	}
	return fmt.Sprintf("Reminder: %s \"%s\" starts in %s", kind, ev.Title, strings.TrimSuffix(rule.Label, " before"))
}

// DefaultMessage builds the reminder email body for an event and rule.
func DefaultMessage(ev Event, rule ReminderRule) string {
	msg := fmt.Sprintf("\"%s\" starts at %s (%s).",
		ev.Title, ev.StartAt.Format("Mon 2 Jan 15:04"), rule.Label)
	if ev.Subject != "" {
		msg += fmt.Sprintf(" Subject: %s.", ev.Subject)
	}
	if ev.Location != "" {
		msg += fmt.Sprintf(" Location: %s.", ev.Location)
	}
	if ev.DurationHours > 0 {
		msg += fmt.Sprintf(" Planned duration: %dh.", ev.DurationHours)
	}
	return msg
}
