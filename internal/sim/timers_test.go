package sim

import (
	"testing"
	"time"
)

func TestTimerQueueRunsInDeadlineOrder(t *testing.T) {
	base := time.Unix(0, 0)
	var q timerQueue
	var order []int
	q.schedule(base.Add(3*time.Second), func() { order = append(order, 3) })
	q.schedule(base.Add(1*time.Second), func() { order = append(order, 1) })
	q.schedule(base.Add(2*time.Second), func() { order = append(order, 2) })

	q.runDue(base.Add(5 * time.Second))
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("execution order = %v", order)
	}
	if q.pending() != 0 {
		t.Fatalf("queue must be empty, %d pending", q.pending())
	}
}

func TestTimerQueueOnlyRunsDue(t *testing.T) {
	base := time.Unix(0, 0)
	var q timerQueue
	ran := 0
	q.schedule(base.Add(1*time.Second), func() { ran++ })
	q.schedule(base.Add(10*time.Second), func() { ran++ })

	q.runDue(base.Add(2 * time.Second))
	if ran != 1 {
		t.Fatalf("ran %d events, want 1", ran)
	}
	if q.pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.pending())
	}
}

func TestTimerQueueEqualDeadlinesKeepInsertionOrder(t *testing.T) {
	base := time.Unix(0, 0)
	var q timerQueue
	var order []int
	at := base.Add(time.Second)
	q.schedule(at, func() { order = append(order, 1) })
	q.schedule(at, func() { order = append(order, 2) })

	q.runDue(at)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("execution order = %v", order)
	}
}
