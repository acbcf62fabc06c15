// FILE: lixenwraith/conlog/file.go
package conlog

import (
	"context"
	"os"
	"path/filepath"
)

// fileDestination appends batches to the text log. It is shared by the file
// sink and the error-only default view.
type fileDestination struct {
	path     string
	tables   *tables
	pipeline *pipeline
	ser      *serializer // reused across writes, the pipeline runs one at a time
}

func newFileDestination(path string, cfg *Config, report func(error)) *fileDestination {
	d := &fileDestination{
		path:   path,
		tables: newTables(),
		ser:    newSerializer(),
	}
	d.pipeline = newPipeline(cfg.flushInterval(), d.write, report)
	return d
}

// write appends the rendered batch and syncs it to disk
func (d *fileDestination) write(ctx context.Context, entries []Entry) (err error) {
	if err := ctx.Err(); err != nil {
		return fmtErrorf("write to '%s' cancelled: %w", d.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(d.path), err)
	}

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", d.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = combineErrors(err, fmtErrorf("failed to close log file '%s': %w", d.path, cerr))
		}
	}()

	if _, err = f.Write(d.ser.serialize(entries)); err != nil {
		return fmtErrorf("failed to write log file '%s': %w", d.path, err)
	}

	if err := f.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", d.path, err)
	}
	return nil
}

// FileSink batches entries into the text log. With errorOnly set it is the
// default mode: the same file and state, but only error and fatal entries.
type FileSink struct {
	recorder
	dest *fileDestination
}

func newFileSink(dest *fileDestination, clock Clock, errorOnly bool) *FileSink {
	s := &FileSink{dest: dest}
	s.recorder = recorder{
		tables:    dest.tables,
		clock:     clock,
		errorOnly: errorOnly,
		stacks:    true,
		deliver:   dest.pipeline.append,
		discard:   dest.pipeline.discard,
	}
	return s
}

func (s *FileSink) Mode() Mode {
	if s.errorOnly {
		return ModeDefault
	}
	return ModeFile
}

// Path is the text log location
func (s *FileSink) Path() string {
	return s.dest.path
}

func (s *FileSink) Flush(ctx context.Context) error {
	return s.dest.pipeline.flush(ctx)
}

func (s *FileSink) Stats() (Stats, bool) {
	return s.dest.pipeline.snapshot(s.Mode()), true
}
