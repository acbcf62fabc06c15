// FILE: lixenwraith/conlog/format.go
package conlog

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"time"
)

// serializer renders entries as text log lines into a reusable buffer.
// A line is "[level] - timestamp [group] " followed by the body, where the
// body and each of its continuation lines carry one tab per group level.
type serializer struct {
	buf []byte
}

func newSerializer() *serializer {
	return &serializer{buf: make([]byte, 0, 4096)}
}

func (s *serializer) reset() {
	s.buf = s.buf[:0]
}

// appendEntry adds one newline-terminated entry to the buffer
func (s *serializer) appendEntry(e Entry) {
	s.buf = append(s.buf, '[')
	s.buf = append(s.buf, e.Level.String()...)
	s.buf = append(s.buf, "] - "...)
	s.buf = append(s.buf, e.Timestamp()...)
	s.buf = append(s.buf, ' ')
	if e.Group != "" {
		s.buf = append(s.buf, '[')
		s.buf = append(s.buf, e.Group...)
		s.buf = append(s.buf, "] "...)
	}

	indent := strings.Repeat(fileIndentUnit, e.Indent)
	body := e.Body()
	s.buf = append(s.buf, indent...)
	for {
		i := strings.IndexByte(body, '\n')
		if i < 0 {
			s.buf = append(s.buf, body...)
			break
		}
		s.buf = append(s.buf, body[:i+1]...)
		s.buf = append(s.buf, indent...)
		body = body[i+1:]
	}
	s.buf = append(s.buf, '\n')
}

// serialize renders a whole batch
func (s *serializer) serialize(entries []Entry) []byte {
	s.reset()
	for _, e := range entries {
		s.appendEntry(e)
	}
	return s.buf
}

// FormatLine renders a single entry without the trailing newline
func FormatLine(e Entry) string {
	s := newSerializer()
	s.appendEntry(e)
	return strings.TrimSuffix(string(s.buf), "\n")
}

var lineHeader = regexp.MustCompile(`^\[(verbose|debug|log|info|warn|error|fatal)\] - (\S+) (.*)$`)

// Upper bound on one text log line while reading
const maxLineBytes = 16 << 20

// ReadFileEntries parses text written by the file sink back into entries.
// Lines that do not open an entry continue the previous one. For error and
// fatal entries the body is the stack, and the message is its first line
// up to the first frame.
//
// The layout has no escaping, so an entry outside any group reads back
// wrongly when its message starts with "[x] \t" (taken as group x) or
// holds a line that itself looks like an entry header (split in two).
// Grouped entries are immune: every body line starts with a tab.
func ReadFileEntries(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var entries []Entry
	var current *Entry
	var lines []string

	finish := func() {
		if current == nil {
			return
		}
		body := strings.Join(lines, "\n")
		if current.Level >= LevelError {
			current.Stack = body
			current.Message = body
			if i := strings.Index(body, "\n    at "); i >= 0 {
				current.Message = body[:i]
			}
		} else {
			current.Message = body
		}
		entries = append(entries, *current)
		current, lines = nil, nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		m := lineHeader.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				lines = append(lines, trimIndent(line, current.Indent))
			}
			continue
		}

		finish()
		level, err := ParseLevel(m[1])
		if err != nil {
			return entries, err
		}
		createdAt, err := time.Parse(timestampLayout, m[2])
		if err != nil {
			return entries, fmtErrorf("invalid timestamp '%s': %w", m[2], err)
		}

		rest := m[3]
		group := ""
		// A group label is always followed by at least one indent unit
		if strings.HasPrefix(rest, "[") {
			if end := strings.Index(rest, "] "+fileIndentUnit); end > 0 {
				group = rest[1:end]
				rest = rest[end+2:]
			}
		}
		indent := 0
		if group != "" {
			indent = len(rest) - len(strings.TrimLeft(rest, fileIndentUnit))
		}

		current = &Entry{Level: level, Indent: indent, Group: group, CreatedAt: createdAt}
		lines = []string{rest[indent:]}
	}
	if err := scanner.Err(); err != nil {
		return entries, fmtErrorf("failed to read log text: %w", err)
	}
	finish()

	return entries, nil
}

// trimIndent removes up to depth leading indent units
func trimIndent(line string, depth int) string {
	for i := 0; i < depth && strings.HasPrefix(line, fileIndentUnit); i++ {
		line = line[len(fileIndentUnit):]
	}
	return line
}
