package compat

import (
	"context"
	"errors"
	"sync"

	"github.com/lixenwraith/conlog"
)

// Builder hands out adapters that share one logger. The logger is either
// supplied with WithLogger or built on first use from WithConfig (or the
// defaults); a built logger belongs to the Builder and is shut down by Close.
type Builder struct {
	once   sync.Once
	logger *conlog.Logger
	cfg    *conlog.Config
	owned  bool
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger shares an existing logger. It takes precedence over WithConfig.
func (b *Builder) WithLogger(l *conlog.Logger) *Builder {
	if l == nil {
		b.err = errors.New("conlog/compat: logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig is used to build a logger when none was supplied
func (b *Builder) WithConfig(cfg *conlog.Config) *Builder {
	b.cfg = cfg
	return b
}

// GetLogger resolves the shared logger, building it at most once
func (b *Builder) GetLogger() (*conlog.Logger, error) {
	b.once.Do(func() {
		if b.err != nil || b.logger != nil {
			return
		}
		cfg := b.cfg
		if cfg == nil {
			cfg = conlog.DefaultConfig()
		}
		b.logger, b.err = conlog.NewBuilder().FromConfig(cfg).Build()
		b.owned = b.err == nil
	})
	if b.err != nil {
		return nil, b.err
	}
	return b.logger, nil
}

func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.GetLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.GetLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// Close shuts down a logger the Builder built. A logger passed to
// WithLogger stays open for its owner.
func (b *Builder) Close(ctx context.Context) error {
	if !b.owned || b.logger == nil {
		return nil
	}
	return b.logger.Shutdown(ctx)
}
