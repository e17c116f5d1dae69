// Package agenda aggregates a user's upcoming calendar items from the Study
// Buddy REST API: personal activities plus scheduled study-group sessions,
// normalized into the common event envelope.
package agenda

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// DefaultBatchSize bounds concurrent group-detail requests.
const DefaultBatchSize = 5

// API is the slice of the REST client the loader needs.
type API interface {
	UserActivities(ctx context.Context, userID string) ([]buddylib.Activity, error)
	UserGroups(ctx context.Context, userID string) ([]buddylib.GroupMembership, error)
	Group(ctx context.Context, groupID string) (*buddylib.Group, error)
}

// Snapshot holds the two normalized source arrays the scheduler keeps as
// state. Either may be empty when its branch failed to load.
type Snapshot struct {
	Activities []buddylib.Event
	Sessions   []buddylib.Event
}

// Upcoming merges the snapshot into a single future-only list, sorted
// ascending by start time. Pure; no side effects.
func (s Snapshot) Upcoming(now time.Time) []buddylib.Event {
	return buddylib.Upcoming(now, s.Activities, s.Sessions)
}

// Loader fetches and normalizes a user's agenda.
type Loader struct {
	api       API
	log       logger.Logger
	batchSize int
	loc       *time.Location
}

// NewLoader creates a Loader. loc is the wall clock used to interpret
// activity date/time strings; nil means time.Local. batchSize <= 0 means
// DefaultBatchSize.
func NewLoader(api API, l logger.Logger, loc *time.Location, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if loc == nil {
		loc = time.Local
	}
	return &Loader{api: api, log: l, batchSize: batchSize, loc: loc}
}

// Load fetches both branches in parallel. Each branch degrades to an empty
// slice on failure: fewer reminders beat a halted scheduler. Load never
// returns an error for network trouble; ctx cancellation still cuts it short.
func (l *Loader) Load(ctx context.Context, user *buddylib.User) Snapshot {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Activities = l.loadActivities(ctx, user.ID)
		return nil
	})
	g.Go(func() error {
		snap.Sessions = l.loadSessions(ctx, user.ID)
		return nil
	})
	_ = g.Wait()
	return snap
}

func (l *Loader) loadActivities(ctx context.Context, userID string) []buddylib.Event {
	activities, err := l.api.UserActivities(ctx, userID)
	if err != nil {
		l.log.Warning("agenda: activities fetch failed: %v", err)
		return nil
	}
	events := make([]buddylib.Event, 0, len(activities))
	for _, a := range activities {
		if a.IsCompleted {
			continue
		}
		ev, err := buddylib.NormalizeActivity(a, l.loc)
		if err != nil {
			l.log.Warning("agenda: skipping activity: %v", err)
			continue
		}
		events = append(events, ev)
	}
	return events
}

func (l *Loader) loadSessions(ctx context.Context, userID string) []buddylib.Event {
	memberships, err := l.api.UserGroups(ctx, userID)
	if err != nil {
		l.log.Warning("agenda: group memberships fetch failed: %v", err)
		return nil
	}

	// Group details are fetched in fixed-size batches: every request of a
	// batch is in flight together, and the next batch starts only once the
	// whole batch has settled. Each goroutine writes its own membership
	// slot, so the compacted result keeps membership order regardless of
	// which request finishes first.
	slots := make([]*buddylib.Event, len(memberships))
	for start := 0; start < len(memberships); start += l.batchSize {
		end := start + l.batchSize
		if end > len(memberships) {
			end = len(memberships)
		}
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if memberships[i].GroupID == "" {
				continue
			}
			wg.Add(1)
			go func(i int, groupID string) {
				defer wg.Done()
				g, err := l.api.Group(ctx, groupID)
				if err != nil {
					l.log.Warning("agenda: group %s fetch failed: %v", groupID, err)
					return
				}
				ev, err := buddylib.NormalizeGroup(*g, l.loc)
				if err != nil {
					// Most groups simply have no scheduled session.
					return
				}
				slots[i] = &ev
			}(i, memberships[i].GroupID)
		}
		wg.Wait()
	}

	var events []buddylib.Event
	for _, s := range slots {
		if s != nil {
			events = append(events, *s)
		}
	}
	return events
}
