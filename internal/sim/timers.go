package sim

import "time"

// timerQueue holds deferred state transitions (cooldown resets, blink
// re-shows). Events run in deadline order when the orchestrator drains the
// queue at the top of a tick, which keeps reset ordering deterministic and
// lets tests drive it with a manual clock instead of wall-clock sleeps.
type timerQueue struct {
	events []timerEvent
}

type timerEvent struct {
	at time.Time
	fn func()
}

// schedule inserts an event keeping the queue sorted by deadline. Events
// with equal deadlines run in insertion order.
func (q *timerQueue) schedule(at time.Time, fn func()) {
	idx := len(q.events)
	for i, ev := range q.events {
		if at.Before(ev.at) {
			idx = i
			break
		}
	}
	q.events = append(q.events, timerEvent{})
	copy(q.events[idx+1:], q.events[idx:])
	q.events[idx] = timerEvent{at: at, fn: fn}
}

// runDue executes and removes every event whose deadline has passed.
func (q *timerQueue) runDue(now time.Time) {
	n := 0
	for _, ev := range q.events {
		if ev.at.After(now) {
			break
		}
		ev.fn()
		n++
	}
	q.events = q.events[n:]
}

// pending returns the number of scheduled events.
func (q *timerQueue) pending() int {
	return len(q.events)
}
