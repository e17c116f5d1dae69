// Package scheduler implements the reminder scheduling core for remindd.
// A single-goroutine timer engine keeps a min-heap of armed reminder timers
// sorted by fire time, with a 60-second max-sleep-cap to handle NTP steps,
// DST transitions, and system sleep. The Scheduler wraps the engine with the
// reminder lifecycle: eligibility gating, periodic agenda refresh, dispatch
// with an idempotency ledger, and a process-wide singleton registry.
//
// Nothing in this package persists armed timers; the timer set is rebuilt
// from the REST API on every refresh.
package scheduler
