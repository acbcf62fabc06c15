// FILE: lixenwraith/conlog/utility.go
package conlog

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// Stack frames kept after the caller's first frame
const maxStackDepth = 32

// stackAnchor locates this package's symbol prefix at runtime
func stackAnchor() {}

var packagePrefix = func() string {
	name := runtime.FuncForPC(reflect.ValueOf(stackAnchor).Pointer()).Name()
	return strings.TrimSuffix(name, "stackAnchor")
}()

// captureStack renders the call stack starting at the first frame outside
// this package. The first line is the message itself, frames follow as
// "    at function (file:line)".
func captureStack(message string) string {
	pc := make([]uintptr, maxStackDepth+32)
	n := runtime.Callers(2, pc) // skip runtime.Callers and captureStack
	if n == 0 {
		return message
	}

	var sb strings.Builder
	sb.WriteString(message)

	frames := runtime.CallersFrames(pc[:n])
	leading := true
	count := 0
	for {
		frame, more := frames.Next()
		if leading && isInternalFrame(frame.Function) {
			if !more {
				break
			}
			continue
		}
		leading = false

		if frame.Function == "runtime.goexit" {
			break
		}
		fmt.Fprintf(&sb, "\n    at %s (%s:%d)", shortFuncName(frame.Function), frame.File, frame.Line)
		count++

		if !more || count >= maxStackDepth {
			break
		}
	}
	return sb.String()
}

// isInternalFrame reports frames of this package's own call path.
// Tests and examples compiled into the package count as callers.
func isInternalFrame(function string) bool {
	if !strings.HasPrefix(function, packagePrefix) {
		return false
	}
	rest := function[len(packagePrefix):]
	return !strings.HasPrefix(rest, "Test") &&
		!strings.HasPrefix(rest, "Benchmark") &&
		!strings.HasPrefix(rest, "Example")
}

// shortFuncName trims the import path, keeping package.Receiver.Method
func shortFuncName(function string) string {
	if function == "" {
		return "(unknown)"
	}
	return filepath.Base(function)
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "conlog: ") {
		format = "conlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// labelOrDefault picks the first label, falling back to "default"
func labelOrDefault(labels []string) string {
	if len(labels) == 0 || labels[0] == "" {
		return defaultLabel
	}
	return labels[0]
}
