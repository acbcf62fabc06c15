// Package formatter turns console-style log arguments into printable text.
// It is pure: nothing here touches sinks, clocks or shared state.
package formatter

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// inline renders composite values on a single line for message text
var inline = &spew.ConfigState{
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// dumper renders composite values as an indented multi-line dump (%o, %O, Dir)
var dumper = &spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Sprintf applies console-style substitution to msg.
// A string msg is scanned for %s, %d, %i, %f, %j, %o, %O, %c and %%.
// Placeholders without a matching argument stay literal and arguments left
// over after substitution are appended, separated by a space.
// A non-string msg is inspected and joined with the arguments.
func Sprintf(msg any, args ...any) string {
	format, ok := msg.(string)
	if !ok {
		return Join(append([]any{msg}, args...)...)
	}

	var sb strings.Builder
	sb.Grow(len(format) + 16*len(args))
	next := 0

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			continue
		}

		verb := format[i+1]
		if verb == '%' {
			sb.WriteByte('%')
			i++
			continue
		}
		if !isVerb(verb) || next >= len(args) {
			sb.WriteByte(c)
			continue
		}

		arg := args[next]
		next++
		i++

		switch verb {
		case 's':
			sb.WriteString(Inspect(arg))
		case 'd':
			sb.WriteString(formatNumber(arg, false))
		case 'i':
			sb.WriteString(formatNumber(arg, true))
		case 'f':
			sb.WriteString(formatFloatArg(arg))
		case 'j':
			sb.WriteString(formatJSON(arg))
		case 'o', 'O':
			sb.WriteString(Dump(arg))
		case 'c':
			// CSS directive, consumed without output
		}
	}

	for _, arg := range args[next:] {
		sb.WriteByte(' ')
		sb.WriteString(Inspect(arg))
	}

	return sb.String()
}

// Join inspects every value and joins them with single spaces
func Join(values ...any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Inspect(v)
	}
	return strings.Join(parts, " ")
}

// Inspect converts a single value to its message representation.
// Composite values fall back to a compact go-spew rendering.
func Inspect(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case time.Duration:
		return val.String()
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case []byte:
		return hex.EncodeToString(val)
	default:
		return inline.Sprintf("%+v", val)
	}
}

// Dump renders v as a multi-line structural dump without the trailing newline
func Dump(v any) string {
	return strings.TrimRight(dumper.Sdump(v), "\n")
}

// Indent prefixes text and every line following an embedded newline with depth copies of unit
func Indent(text string, depth int, unit string) string {
	if depth <= 0 || unit == "" {
		return text
	}
	prefix := strings.Repeat(unit, depth)
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

func isVerb(c byte) bool {
	switch c {
	case 's', 'd', 'i', 'f', 'j', 'o', 'O', 'c':
		return true
	}
	return false
}

// formatNumber converts v for %d and %i, yielding NaN for non-numeric input
func formatNumber(v any, integer bool) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if integer {
			f = math.Trunc(f)
		}
		return formatFloat(f)
	case reflect.Bool:
		if rv.Bool() {
			return "1"
		}
		return "0"
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return "NaN"
		}
		if integer {
			f = math.Trunc(f)
		}
		return formatFloat(f)
	}
	return "NaN"
}

// formatFloatArg converts v for %f
func formatFloatArg(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatFloat(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return formatFloat(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64); err == nil {
			return formatFloat(f)
		}
	}
	return "NaN"
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[unserializable]"
	}
	return string(b)
}
