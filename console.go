// FILE: lixenwraith/conlog/console.go
package conlog

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/lixenwraith/conlog/formatter"
)

// Console targets
const (
	consoleTargetSplit  = "split"  // warn and above to the error stream
	consoleTargetStdout = "stdout" // everything to the output stream
	consoleTargetStderr = "stderr" // everything to the error stream
)

// ConsoleSink writes each entry to the process streams as it is logged
type ConsoleSink struct {
	recorder

	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	split  bool
	styles map[Level]lipgloss.Style
	report func(error)
}

func newConsoleSink(out, errOut io.Writer, cfg *Config, clock Clock, report func(error)) *ConsoleSink {
	switch cfg.ConsoleTarget {
	case consoleTargetStdout:
		errOut = out
	case consoleTargetStderr:
		out = errOut
	}

	s := &ConsoleSink{
		out:    out,
		errOut: errOut,
		split:  cfg.ConsoleTarget == consoleTargetSplit,
		report: report,
	}
	if cfg.ConsoleColor && isTerminal(out) {
		s.styles = levelStyles(lipgloss.NewRenderer(out), lipgloss.NewRenderer(errOut))
	}
	s.recorder = recorder{
		tables:  newTables(),
		clock:   clock,
		deliver: s.write,
	}
	return s
}

func levelStyles(outR, errR *lipgloss.Renderer) map[Level]lipgloss.Style {
	return map[Level]lipgloss.Style{
		LevelVerbose: outR.NewStyle().Faint(true),
		LevelDebug:   outR.NewStyle().Faint(true),
		LevelInfo:    outR.NewStyle().Foreground(lipgloss.Color("6")),
		LevelWarn:    errR.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError:   errR.NewStyle().Foreground(lipgloss.Color("1")),
		LevelFatal:   errR.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *ConsoleSink) write(e Entry) {
	text := formatter.Indent(e.Message, e.Indent, consoleIndentUnit)
	if style, ok := s.styles[e.Level]; ok {
		text = style.Render(text)
	}

	w := s.out
	if s.split && e.Level >= LevelWarn {
		w = s.errOut
	}

	s.mu.Lock()
	_, err := io.WriteString(w, text+"\n")
	s.mu.Unlock()
	if err != nil && s.report != nil {
		s.report(fmtErrorf("console write failed: %w", err))
	}
}

// Group prints the label at the current depth, then indents what follows
func (s *ConsoleSink) Group(label string) {
	if label != "" {
		s.record(LevelLog, label)
	}
	s.recorder.Group(label)
}

func (s *ConsoleSink) Mode() Mode {
	return ModeConsole
}

func (s *ConsoleSink) Flush(context.Context) error {
	return nil
}

func (s *ConsoleSink) Stats() (Stats, bool) {
	return Stats{}, false
}
