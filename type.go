// FILE: lixenwraith/conlog/type.go
package conlog

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Entry is one observed event. It is immutable once built.
type Entry struct {
	Level     Level
	Indent    int    // group depth at creation
	Group     string // innermost group label, empty outside any group
	Message   string
	Stack     string // message followed by call frames, error and fatal only
	CreatedAt time.Time
}

// Timestamp renders CreatedAt the way every persistent sink stores it
func (e Entry) Timestamp() string {
	return e.CreatedAt.UTC().Format(timestampLayout)
}

// Body is the text a persistent sink writes: the stack when present, else the message
func (e Entry) Body() string {
	if e.Stack != "" {
		return e.Stack
	}
	return e.Message
}

// Stats is a snapshot of one buffered destination's counters
type Stats struct {
	Mode           Mode
	Pending        int
	Flushes        uint64
	FailedFlushes  uint64
	EntriesWritten uint64
	DroppedEntries uint64
}

// Clock supplies entry timestamps and timer readings.
// xclock clocks satisfy it.
type Clock interface {
	Now() time.Time
}

// ErrorHandler receives failures that never reach a logging caller,
// such as a flush that could not write its batch.
type ErrorHandler func(error)

// systemClock follows xclock's process default, so xclock.SetDefault
// takes effect for registries that were not given a clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return xclock.Now() }
