package cmd

const DEF_HISTORY_LIMIT = 20

const DESCRIPTION = `
Remind keeps a background daemon watching your Wits Study Buddy
agenda. It arms timers ahead of every activity and group session
and dispatches email reminders through the Study Buddy API at
23 hours, 5 hours, 1 hour and 5 minutes before each event starts.
`

const (
	StatusDescription = `The status command reports the scheduler state, the number
of armed timers and tracked events, and the next scheduled
agenda refresh.

Example:
        remind status

`
	EventsDescription = `The events command lists upcoming activities and group
sessions known to the daemon, soonest first.

Example:
        remind events
        remind events --kind group_session

`
	RefreshDescription = `The refresh command makes the daemon reload activities and
group sessions from the Study Buddy API immediately and
rearm the reminder timers. The periodic refresh keeps its
own schedule either way.

Example:
        remind refresh

`
	HistoryDescription = `The history command displays recently dispatched reminders,
newest first, including failed attempts.

Example:
        remind history
        remind history --limit 50

`
	AttachDescription = `The attach command subscribes to the daemon's notification
stream and prints every reminder toast until interrupted.

Example:
        remind attach

`
	LoginDescription = `The login command reads a Study Buddy API token from the
terminal and stores it encrypted. The daemon uses the token
for every API call.

Example:
        remind login

`
	LogoutDescription = `The logout command deletes the stored API token. A running
daemon keeps its session until restarted.

Example:
        remind logout

`
)
