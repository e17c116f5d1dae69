package scheduler

import (
	"context"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adhocore/gronx"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/agenda"
	"github.com/studybuddy/remindd/internal/auth"
	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// State is the scheduler lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateActive
	StateRefreshing
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateActive:
		return "active"
	case StateRefreshing:
		return "refreshing"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// DefaultRefreshCron is the periodic refresh cadence.
const DefaultRefreshCron = "*/5 * * * *"

// DefaultEmailPattern gates scheduling to institutional student addresses.
const DefaultEmailPattern = `^\d+@students\.wits\.ac\.za$`

// Sender dispatches one reminder to the server.
type Sender interface {
	SendReminder(ctx context.Context, p *buddylib.ReminderPayload) error
}

// Notifier shows a user-visible toast. Fire-and-forget.
type Notifier interface {
	Show(kind common.NotificationKind, message string)
}

// Recorder persists one dispatch attempt to the audit journal.
type Recorder interface {
	Record(entry common.HistoryEntry) error
}

// Formatter customizes reminder subject and message text.
type Formatter interface {
	Format(ev buddylib.Event, rule buddylib.ReminderRule) (subject, message string, err error)
}

// Options configures a Scheduler. Auth, Loader and Sender are required;
// Notifier, Recorder and Formatter may be nil.
type Options struct {
	Auth      auth.Provider
	Loader    *agenda.Loader
	Sender    Sender
	Notifier  Notifier
	Recorder  Recorder
	Formatter Formatter
	Logger    logger.Logger

	// EmailPattern overrides DefaultEmailPattern. Matched case-insensitively.
	EmailPattern string

	// RefreshCron overrides DefaultRefreshCron.
	RefreshCron string

	// Rules overrides the default lead-time rule set.
	Rules []buddylib.ReminderRule
}

// Scheduler is the reminder scheduling process. It owns all armed-timer and
// dispatch-ledger state for its lifetime; collaborators are read-only from
// its point of view.
type Scheduler struct {
	opts    Options
	rules   []buddylib.ReminderRule
	pattern *regexp.Regexp
	cron    string
	log     logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	state      atomic.Int32
	refreshing atomic.Bool

	engine *Engine
	ledger *Ledger

	mu          sync.Mutex
	user        *buddylib.User
	snap        agenda.Snapshot
	lastRefresh time.Time
	nextRefresh time.Time

	nowFn func() time.Time
}

// New creates an Uninitialized scheduler. Call Init to start it; prefer
// GetOrCreate, which also claims the process-wide singleton slot.
func New(opts Options) (*Scheduler, error) {
	pat := opts.EmailPattern
	if pat == "" {
		pat = DefaultEmailPattern
	}
	re, err := regexp.Compile("(?i)" + pat)
	if err != nil {
		return nil, err
	}
	cron := opts.RefreshCron
	if cron == "" {
		cron = DefaultRefreshCron
	}
	if !gronx.New().IsValid(cron) {
		return nil, errInvalidCron(cron)
	}
	rules := opts.Rules
	if len(rules) == 0 {
		rules = buddylib.DefaultRules()
	}
	l := opts.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		opts:    opts,
		rules:   rules,
		pattern: re,
		cron:    cron,
		log:     l,
		ctx:     ctx,
		cancel:  cancel,
		ledger:  NewLedger(),
		nowFn:   time.Now,
	}
	s.state.Store(int32(StateUninitialized))
	return s, nil
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) destroyed() bool {
	return s.State() == StateDestroyed
}

// Init runs the policy gate and, if it passes, arms the first timer set and
// starts the periodic refresh loop. A second call while initialization is in
// progress or complete is a no-op. A failed gate halts the scheduler in
// Initializing permanently: that is policy, not a transient failure, so there
// is no retry path.
func (s *Scheduler) Init() error {
	if !s.state.CompareAndSwap(int32(StateUninitialized), int32(StateInitializing)) {
		return nil
	}

	user := s.opts.Auth.CurrentUser()
	if user == nil {
		s.log.Warning("scheduler: no authenticated user, reminders disabled")
		return buddylib.ErrNotAuthenticated
	}
	if !s.pattern.MatchString(user.Email) {
		s.log.Warning("scheduler: email %q is not an institutional address, reminders disabled", user.Email)
		return buddylib.ErrNotEligible
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.engine = NewEngine(s.ctx, s.onFire)
	s.state.Store(int32(StateActive))
	s.log.Info("scheduler: active for %s", user.Email)

	if _, err := s.Refresh(s.ctx); err != nil {
		s.log.Warning("scheduler: initial refresh: %v", err)
	}
	go s.refreshLoop()
	return nil
}

// refreshLoop triggers Refresh on the configured cron cadence until the
// scheduler is destroyed.
func (s *Scheduler) refreshLoop() {
	for {
		next, err := gronx.NextTickAfter(s.cron, s.nowFn(), false)
		if err != nil {
			s.log.Error("scheduler: refresh cron: %v", err)
			return
		}
		s.mu.Lock()
		s.nextRefresh = next
		s.mu.Unlock()

		select {
		case <-s.ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		if _, err := s.Refresh(s.ctx); err != nil {
			s.log.Warning("scheduler: periodic refresh: %v", err)
		}
	}
}

// Refresh reloads the agenda and fully rebuilds the armed timer set. A
// refresh that finds another refresh in flight is skipped rather than
// stacked; the caller can retry after the current one settles.
func (s *Scheduler) Refresh(ctx context.Context) (common.RefreshResponse, error) {
	var resp common.RefreshResponse
	if s.destroyed() {
		return resp, buddylib.ErrDestroyed
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		resp.Skipped = true
		return resp, nil
	}
	defer s.refreshing.Store(false)

	s.state.CompareAndSwap(int32(StateActive), int32(StateRefreshing))
	defer s.state.CompareAndSwap(int32(StateRefreshing), int32(StateActive))

	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return resp, buddylib.ErrNotAuthenticated
	}

	snap := s.opts.Loader.Load(ctx, user)

	// An in-flight load may outlive teardown; never touch state after it.
	if s.destroyed() {
		return resp, buddylib.ErrDestroyed
	}

	s.mu.Lock()
	s.snap = snap
	s.lastRefresh = s.nowFn()
	s.mu.Unlock()

	s.engine.Clear()
	armed := s.ScheduleAllReminders()

	resp.Activities = len(snap.Activities)
	resp.Sessions = len(snap.Sessions)
	resp.ArmedTimers = armed
	s.log.Info("scheduler: refreshed, %d activities, %d sessions, %d timers armed",
		resp.Activities, resp.Sessions, armed)
	return resp, nil
}

// UpcomingEvents merges the current snapshot into a future-only list sorted
// ascending by start time. Pure read of component state.
func (s *Scheduler) UpcomingEvents() []buddylib.Event {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()
	return snap.Upcoming(s.nowFn())
}

// ScheduleAllReminders arms one timer per upcoming event and rule whose fire
// instant is still in the future. Existing timers for an event are cancelled
// before re-arming, so calling this twice with unchanged data neither
// duplicates nor drops timers. Returns the number of timers armed.
func (s *Scheduler) ScheduleAllReminders() int {
	if s.destroyed() {
		return 0
	}
	now := s.nowFn()
	var armed int
	for _, ev := range s.UpcomingEvents() {
		s.engine.CancelEvent(EventRef{ID: ev.ID, Kind: ev.Kind})
		for _, rule := range s.rules {
			fireAt := rule.FireAt(ev.StartAt)
			if !fireAt.After(now) {
				continue
			}
			s.engine.Arm(TimerKey{EventID: ev.ID, Kind: ev.Kind, Rule: rule.Label}, fireAt)
			armed++
		}
	}
	return armed
}

// onFire is the engine callback. Dispatch runs on its own goroutine with
// panic recovery so a bad payload can never kill the timer loop, and so slow
// network calls never delay other timers.
func (s *Scheduler) onFire(key TimerKey) {
	buddylib.SafeGo(s.log, nil, "dispatch "+key.String(), nil, func() {
		s.sendReminder(key)
	})
}

// sendReminder dispatches the reminder for a fired timer key. The armed
// timer entry is already gone by the time this runs; firing is single-shot
// regardless of dispatch outcome.
func (s *Scheduler) sendReminder(key TimerKey) {
	if s.destroyed() {
		return
	}

	ev, rule, ok := s.resolve(key)
	if !ok {
		s.log.Warning("scheduler: fired timer %s has no matching event, skipping", key)
		return
	}

	dedup := DedupKeyFor(ev, rule.Label)
	if !s.ledger.Begin(dedup) {
		s.log.Info("scheduler: duplicate reminder %s suppressed", dedup)
		return
	}

	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	subject, message := s.format(ev, rule)
	payload := &buddylib.ReminderPayload{
		To:           user.Email,
		Subject:      subject,
		Message:      message,
		EventType:    string(ev.Kind),
		EventID:      ev.ID,
		ReminderTime: rule.Label,
		UserName:     user.Name,
	}

	err := s.opts.Sender.SendReminder(s.ctx, payload)
	if s.destroyed() {
		return
	}
	if err != nil {
		// Roll back the optimistic claim so the next trigger may retry.
		s.ledger.Rollback(dedup)
		s.log.Error("scheduler: reminder dispatch %s failed: %v", dedup, err)
		s.notify(common.NotifyError, "Could not send reminder for \""+ev.Title+"\"")
		s.record(ev, rule, payload, err)
		return
	}
	s.ledger.MarkSent(dedup)
	s.log.Info("scheduler: reminder %s sent", dedup)
	s.notify(common.NotifySuccess, "Reminder sent: \""+ev.Title+"\" ("+rule.Label+")")
	s.record(ev, rule, payload, nil)
}

// resolve maps a fired timer key back to its event and rule. The event may
// have disappeared if a refresh replaced the snapshot between arming and
// firing.
func (s *Scheduler) resolve(key TimerKey) (buddylib.Event, buddylib.ReminderRule, bool) {
	var rule buddylib.ReminderRule
	var found bool
	for _, r := range s.rules {
		if r.Label == key.Rule {
			rule = r
			found = true
			break
		}
	}
	if !found {
		return buddylib.Event{}, rule, false
	}
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()
	for _, src := range [][]buddylib.Event{snap.Activities, snap.Sessions} {
		for _, ev := range src {
			if ev.ID == key.EventID && ev.Kind == key.Kind {
				return ev, rule, true
			}
		}
	}
	return buddylib.Event{}, rule, false
}

func (s *Scheduler) format(ev buddylib.Event, rule buddylib.ReminderRule) (string, string) {
	if s.opts.Formatter != nil {
		subject, message, err := s.opts.Formatter.Format(ev, rule)
		if err == nil {
			return subject, message
		}
		s.log.Warning("scheduler: formatter failed, using default text: %v", err)
	}
	return buddylib.DefaultSubject(ev, rule), buddylib.DefaultMessage(ev, rule)
}

func (s *Scheduler) notify(kind common.NotificationKind, message string) {
	if s.opts.Notifier != nil {
		s.opts.Notifier.Show(kind, message)
	}
}

func (s *Scheduler) record(ev buddylib.Event, rule buddylib.ReminderRule, p *buddylib.ReminderPayload, dispatchErr error) {
	if s.opts.Recorder == nil {
		return
	}
	entry := common.HistoryEntry{
		EventID:    ev.ID,
		EventKind:  string(ev.Kind),
		Rule:       rule.Label,
		EventStart: ev.StartAt,
		SentAt:     s.nowFn(),
		Recipient:  p.To,
		Subject:    p.Subject,
		Ok:         dispatchErr == nil,
	}
	if dispatchErr != nil {
		entry.Error = dispatchErr.Error()
	}
	if err := s.opts.Recorder.Record(entry); err != nil {
		s.log.Warning("scheduler: journal write failed: %v", err)
	}
}

// Status reports the scheduler's current state for the RPC surface.
func (s *Scheduler) Status() common.StatusResponse {
	s.mu.Lock()
	user := s.user
	lastRefresh := s.lastRefresh
	nextRefresh := s.nextRefresh
	s.mu.Unlock()

	resp := common.StatusResponse{
		State:         s.State().String(),
		TrackedEvents: len(s.UpcomingEvents()),
		SentReminders: s.ledger.SentCount(),
		LastRefresh:   lastRefresh,
		NextRefresh:   nextRefresh,
	}
	if user != nil {
		resp.UserEmail = user.Email
	}
	if s.engine != nil {
		resp.ArmedTimers = s.engine.Armed()
	}
	return resp
}

// Destroy cancels every armed timer and the periodic refresh, clears the
// dedup ledger, and leaves the scheduler permanently Destroyed. Safe to call
// from any state, any number of times.
func (s *Scheduler) Destroy() {
	if State(s.state.Swap(int32(StateDestroyed))) == StateDestroyed {
		return
	}
	s.cancel()
	s.ledger.Clear()
	s.log.Info("scheduler: destroyed")
}

type errInvalidCron string

func (e errInvalidCron) Error() string {
	return "invalid refresh cron expression: " + string(e)
}
