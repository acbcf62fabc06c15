// FILE: lixenwraith/conlog/record.go
package conlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/conlog/formatter"
)

// recorder implements the console capabilities shared by every sink on top
// of a destination's tables. Entries it builds go to deliver.
type recorder struct {
	tables    *tables
	clock     Clock
	errorOnly bool // drop everything below error before formatting
	stacks    bool // attach call stacks to error and fatal entries
	deliver   func(Entry)
	discard   func() // empties undelivered entries, nil when there are none
}

func (r *recorder) allowed(level Level) bool {
	return !r.errorOnly || level >= LevelError
}

// Log formats and records one entry
func (r *recorder) Log(level Level, msg any, args ...any) {
	if !r.allowed(level) {
		return
	}
	r.record(level, formatter.Sprintf(msg, args...))
}

// record builds an entry from an already formatted message
func (r *recorder) record(level Level, message string) {
	indent, group := r.tables.depth()
	e := Entry{
		Level:     level,
		Indent:    indent,
		Group:     group,
		Message:   message,
		CreatedAt: r.clock.Now().UTC(),
	}
	if r.stacks && level >= LevelError {
		e.Stack = captureStack(message)
	}
	r.deliver(e)
}

func (r *recorder) Assert(condition bool, msg any, args ...any) {
	if condition {
		return
	}
	message := "Assertion failed"
	if msg != nil || len(args) > 0 {
		message += ": " + formatter.Sprintf(msg, args...)
	}
	r.record(LevelError, message)
}

func (r *recorder) Table(data any, columns ...string) {
	if !r.allowed(LevelLog) {
		return
	}
	r.record(LevelLog, formatter.BuildTable(data, columns...).Render())
}

// Group pushes label; an unlabeled group is stored as "default" so every
// indented line keeps a group bracket to anchor its indentation
func (r *recorder) Group(label string) {
	if label == "" {
		label = defaultLabel
	}
	r.tables.pushGroup(label)
}

func (r *recorder) GroupEnd() {
	r.tables.popGroup()
}

func (r *recorder) Count(label string) {
	n := r.tables.increment(label)
	if r.allowed(LevelLog) {
		r.record(LevelLog, label+": "+strconv.Itoa(n))
	}
}

func (r *recorder) CountReset(label string) {
	r.tables.resetCounter(label)
}

func (r *recorder) Time(label string) {
	r.tables.startTimer(label, r.clock.Now())
}

func (r *recorder) TimeEnd(label string) {
	elapsed := r.elapsed(label, true)
	if r.allowed(LevelLog) {
		r.record(LevelLog, fmt.Sprintf("%s: %sms - timer ended", label, elapsed))
	}
}

func (r *recorder) TimeLog(label string, args ...any) {
	elapsed := r.elapsed(label, false)
	if !r.allowed(LevelLog) {
		return
	}
	message := fmt.Sprintf("%s: %sms", label, elapsed)
	if len(args) > 0 {
		message += " " + formatter.Join(args...)
	}
	r.record(LevelLog, message)
}

// elapsed reads a timer in whole milliseconds. A missing timer is reported
// as an error entry and reads "NaN".
func (r *recorder) elapsed(label string, take bool) string {
	start, ok := r.tables.timer(label, take)
	if !ok {
		r.record(LevelError, fmt.Sprintf("Timer %q doesn't exist.", label))
		return "NaN"
	}
	return strconv.FormatInt(r.clock.Now().Sub(start).Milliseconds(), 10)
}

func (r *recorder) Clear() {
	r.tables.clear()
	if r.discard != nil {
		r.discard()
	}
}

// joinLabels builds a group label from the facade's variadic arguments
func joinLabels(labels []string) string {
	return strings.TrimSpace(strings.Join(labels, " "))
}
