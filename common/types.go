package common

import (
	"time"

	"github.com/studybuddy/remindd/pkg/buddylib"
)

// StatusResponse describes the scheduler's current state.
type StatusResponse struct {
	State         string    `json:"state"`
	UserEmail     string    `json:"user_email,omitempty"`
	ArmedTimers   int       `json:"armed_timers"`
	TrackedEvents int       `json:"tracked_events"`
	SentReminders int       `json:"sent_reminders"`
	LastRefresh   time.Time `json:"last_refresh,omitempty"`
	NextRefresh   time.Time `json:"next_refresh,omitempty"`
}

// EventsParams filters the events listing.
type EventsParams struct {
	// Kind restricts results to "activity" or "group_session"; empty means both.
	Kind string `json:"kind,omitempty"`
}

// EventsResponse carries the merged upcoming event list.
type EventsResponse struct {
	Events []buddylib.Event `json:"events"`
}

// RefreshResponse reports the outcome of a manual refresh.
type RefreshResponse struct {
	Activities  int  `json:"activities"`
	Sessions    int  `json:"sessions"`
	ArmedTimers int  `json:"armed_timers"`
	Skipped     bool `json:"skipped,omitempty"`
}

// HistoryParams limits the dispatch history listing.
type HistoryParams struct {
	Limit int `json:"limit,omitempty"`
}

// HistoryEntry is one recorded dispatch attempt.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	EventID    string    `json:"event_id"`
	EventKind  string    `json:"event_kind"`
	Rule       string    `json:"rule"`
	EventStart time.Time `json:"event_start"`
	SentAt     time.Time `json:"sent_at"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Ok         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
}

// HistoryResponse carries recorded dispatch attempts, newest first.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// Notification is a toast pushed to attached clients.
type Notification struct {
	ID      string           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}

// AttachResponse acknowledges an attach request.
type AttachResponse struct {
	Attached bool `json:"attached"`
}

// VersionResponse reports daemon build information.
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}

// StopDaemonResponse acknowledges a shutdown request.
type StopDaemonResponse struct {
	Stopping bool `json:"stopping"`
}
