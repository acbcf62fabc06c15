// FILE: lixenwraith/conlog/state.go
package conlog

import (
	"sync"
	"sync/atomic"
	"time"
)

// tables holds the group stack, counters, and timers of one sink destination.
// Every facade that resolves the same destination shares one instance.
type tables struct {
	mu       sync.Mutex
	groups   []string
	counters map[string]int
	timers   map[string]time.Time
}

func newTables() *tables {
	return &tables{
		counters: make(map[string]int),
		timers:   make(map[string]time.Time),
	}
}

// depth returns the current indent and innermost group label
func (t *tables) depth() (int, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.groups) == 0 {
		return 0, ""
	}
	return len(t.groups), t.groups[len(t.groups)-1]
}

func (t *tables) pushGroup(label string) {
	t.mu.Lock()
	t.groups = append(t.groups, label)
	t.mu.Unlock()
}

// popGroup is a no-op on an empty stack
func (t *tables) popGroup() {
	t.mu.Lock()
	if n := len(t.groups); n > 0 {
		t.groups = t.groups[:n-1]
	}
	t.mu.Unlock()
}

func (t *tables) increment(label string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counters[label]++
	return t.counters[label]
}

func (t *tables) resetCounter(label string) {
	t.mu.Lock()
	delete(t.counters, label)
	t.mu.Unlock()
}

func (t *tables) startTimer(label string, at time.Time) {
	t.mu.Lock()
	t.timers[label] = at
	t.mu.Unlock()
}

// timer looks up a start time, removing it when take is set
func (t *tables) timer(label string, take bool) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, ok := t.timers[label]
	if ok && take {
		delete(t.timers, label)
	}
	return start, ok
}

func (t *tables) clear() {
	t.mu.Lock()
	t.groups = nil
	t.counters = make(map[string]int)
	t.timers = make(map[string]time.Time)
	t.mu.Unlock()
}

// flushCounters tracks the lifetime statistics of a buffered destination
type flushCounters struct {
	Flushes        atomic.Uint64
	FailedFlushes  atomic.Uint64
	EntriesWritten atomic.Uint64
	DroppedEntries atomic.Uint64
}

func (c *flushCounters) snapshot(mode Mode, pending int) Stats {
	return Stats{
		Mode:           mode,
		Pending:        pending,
		Flushes:        c.Flushes.Load(),
		FailedFlushes:  c.FailedFlushes.Load(),
		EntriesWritten: c.EntriesWritten.Load(),
		DroppedEntries: c.DroppedEntries.Load(),
	}
}
