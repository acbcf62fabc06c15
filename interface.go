// FILE: lixenwraith/conlog/interface.go
package conlog

import (
	"context"
)

// Sink is one destination behind the Logger facade. Every sink supports the
// full console surface; how an entry is delivered is the sink's business.
type Sink interface {
	Mode() Mode

	Log(level Level, msg any, args ...any)
	Assert(condition bool, msg any, args ...any)
	Table(data any, columns ...string)

	Group(label string)
	GroupEnd()
	Count(label string)
	CountReset(label string)
	Time(label string)
	TimeEnd(label string)
	TimeLog(label string, args ...any)

	// Clear drops grouping, counters, timers, and anything not yet written
	Clear()
	// Flush writes pending entries now
	Flush(ctx context.Context) error
	// Stats reports the destination's counters, ok is false for unbuffered sinks
	Stats() (Stats, bool)
}
