// FILE: lixenwraith/conlog/reporter.go
package conlog

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// reporter surfaces internal failures without ever failing a logging call.
// A handler takes every error; otherwise errors go to stderr when enabled,
// rate limited so a broken destination cannot flood the terminal.
type reporter struct {
	handler    ErrorHandler
	toStderr   bool
	out        io.Writer
	limiter    *rate.Limiter
	suppressed atomic.Uint64
	total      atomic.Uint64
}

func newReporter(handler ErrorHandler, toStderr bool, out io.Writer) *reporter {
	return &reporter{
		handler:  handler,
		toStderr: toStderr,
		out:      out,
		limiter:  rate.NewLimiter(rate.Limit(internalErrorRate), internalErrorBurst),
	}
}

func (r *reporter) report(err error) {
	if err == nil {
		return
	}
	r.total.Add(1)

	if r.handler != nil {
		r.handler(err)
		return
	}
	if !r.toStderr || r.out == nil {
		return
	}
	if !r.limiter.Allow() {
		r.suppressed.Add(1)
		return
	}
	if n := r.suppressed.Swap(0); n > 0 {
		internalLog(r.out, "%d internal errors suppressed\n", n)
	}
	internalLog(r.out, "%v\n", err)
}

// internalLog writes one prefixed line to the internal error stream
func internalLog(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasPrefix(msg, "conlog: ") {
		msg = "conlog: " + msg
	}
	fmt.Fprint(w, msg)
}
