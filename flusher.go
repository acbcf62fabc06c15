// FILE: lixenwraith/conlog/flusher.go
package conlog

import (
	"context"
	"sync"
	"time"
)

// writeFunc persists one drained batch in insertion order
type writeFunc func(ctx context.Context, entries []Entry) error

// pipeline buffers entries for a persistent destination and writes them
// after a quiet period. Each append restarts the countdown; a write in
// progress blocks new countdowns until it finishes, after which any entries
// that arrived meanwhile get a fresh countdown. A failed write puts its
// entries back and retries on the next countdown.
type pipeline struct {
	mu       sync.Mutex
	pending  batch
	timer    *time.Timer
	gen      uint64 // invalidates countdowns that fired after being replaced
	cleared  uint64 // bumped by discard; a failed write older than it is not restored
	running  bool
	done     chan struct{} // closed when the running write returns
	stopped  bool
	interval time.Duration
	write    writeFunc
	report   func(error)
	stats    flushCounters
}

func newPipeline(interval time.Duration, write writeFunc, report func(error)) *pipeline {
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	return &pipeline{
		interval: interval,
		write:    write,
		report:   report,
	}
}

// append queues an entry and restarts the countdown unless a write is running
func (p *pipeline) append(e Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.stats.DroppedEntries.Add(1)
		return
	}
	p.pending.append(e)
	if !p.running {
		p.armLocked()
	}
}

func (p *pipeline) armLocked() {
	p.disarmLocked()
	gen := p.gen
	p.timer = time.AfterFunc(p.interval, func() { p.expire(gen) })
}

func (p *pipeline) disarmLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
}

func (p *pipeline) expire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.running || p.stopped {
		return
	}
	p.timer = nil
	p.flushLocked(context.Background())
}

// flushLocked drains and writes the batch. p.mu is held on entry and exit
// and released for the duration of the write.
func (p *pipeline) flushLocked(ctx context.Context) error {
	entries := p.pending.drain()
	if len(entries) == 0 {
		return nil
	}

	p.running = true
	done := make(chan struct{})
	p.done = done
	cleared := p.cleared
	p.mu.Unlock()
	err := p.write(ctx, entries)
	if err != nil && p.report != nil {
		p.report(err)
	}
	p.mu.Lock()
	p.running = false
	p.done = nil
	close(done)

	if err != nil {
		p.stats.FailedFlushes.Add(1)
		switch {
		case p.stopped:
			p.stats.DroppedEntries.Add(uint64(len(entries)))
		case cleared == p.cleared:
			p.pending.restore(entries)
		}
	} else {
		p.stats.Flushes.Add(1)
		p.stats.EntriesWritten.Add(uint64(len(entries)))
	}

	if p.pending.len() > 0 && !p.stopped {
		p.armLocked()
	}
	return err
}

// flush writes everything pending now, waiting out a write already running
// for as long as ctx allows
func (p *pipeline) flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.awaitIdleLocked(ctx); err != nil {
		return err
	}
	p.disarmLocked()
	return p.flushLocked(ctx)
}

// awaitIdleLocked waits for the running write with p.mu released
func (p *pipeline) awaitIdleLocked(ctx context.Context) error {
	for p.running {
		done := p.done
		p.mu.Unlock()
		select {
		case <-done:
			p.mu.Lock()
		case <-ctx.Done():
			p.mu.Lock()
			return fmtErrorf("flush cancelled: %w", ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return fmtErrorf("flush cancelled: %w", err)
	}
	return nil
}

// close flushes and stops accepting entries
func (p *pipeline) close(ctx context.Context) error {
	err := p.flush(ctx)

	p.mu.Lock()
	p.stopped = true
	p.disarmLocked()
	if n := p.pending.len(); n > 0 {
		p.stats.DroppedEntries.Add(uint64(n))
		p.pending.clear()
	}
	p.mu.Unlock()

	return err
}

// discard empties the batch without writing it
func (p *pipeline) discard() {
	p.mu.Lock()
	p.pending.clear()
	p.cleared++
	p.disarmLocked()
	p.mu.Unlock()
}

func (p *pipeline) pendingLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len()
}

func (p *pipeline) snapshot(mode Mode) Stats {
	return p.stats.snapshot(mode, p.pendingLen())
}
