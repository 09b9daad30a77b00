package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a logical-clock Scheduler for tests. Callbacks fire only when
// Advance moves the clock past their deadline, synchronously, in deadline
// order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

// NewManual creates a Manual scheduler at logical time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	s        *Manual
	deadline time.Duration
	f        func()
	stopped  bool
	fired    bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{s: m, deadline: m.now + d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the logical clock forward and fires every due callback.
// Callbacks run without the scheduler lock held, so they may schedule
// further timers.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()

	for {
		t := m.nextDue(now)
		if t == nil {
			return
		}
		t.f()
	}
}

// Pending returns the number of timers that are scheduled and not yet
// fired or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// nextDue pops the earliest unfired, unstopped timer with deadline <= now.
func (m *Manual) nextDue(now time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.SliceStable(m.pending, func(i, j int) bool {
		return m.pending[i].deadline < m.pending[j].deadline
	})
	for _, t := range m.pending {
		if t.fired || t.stopped || t.deadline > now {
			continue
		}
		t.fired = true
		return t
	}
	return nil
}
