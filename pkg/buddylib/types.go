package buddylib

// Activity is the wire shape of a personal activity as returned by
// GET /api/activities/user/{userId}. The server already filters the list to
// incomplete activities owned by the requesting user.
type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Location    string `json:"location,omitempty"`

	// Date and Time are separate local wall-clock strings,
	// "2006-01-02" and "15:04".
	Date string `json:"activity_date"`
	Time string `json:"activity_time"`

	// DurationHours may be zero or missing; it is clamped to a minimum of 1
	// during normalization.
	DurationHours int  `json:"duration_hours,omitempty"`
	IsCompleted   bool `json:"is_completed,omitempty"`
}

// GroupMembership is one entry of GET /api/groups/user/{userId}?status=active.
type GroupMembership struct {
	GroupID string `json:"group_id"`
	Status  string `json:"status,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Group is the wire shape of GET /api/groups/{groupId}. ScheduledStart and
// ScheduledEnd are RFC 3339 UTC timestamps; groups without a valid pair have
// no scheduled session and are skipped.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Location    string `json:"location,omitempty"`

	ScheduledStart string `json:"scheduled_start,omitempty"`
	ScheduledEnd   string `json:"scheduled_end,omitempty"`
}

// ReminderPayload is the body of POST /api/reminders/send.
type ReminderPayload struct {
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	EventType    string `json:"event_type"`
	EventID      string `json:"event_id"`
	ReminderTime string `json:"reminder_time"`
	UserName     string `json:"user_name"`
}

// User is the authenticated account identity provided by the auth collaborator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
