package compat

import (
	"fmt"

	"github.com/asynclog/asynclog"
)

// Builder provides a single place to construct both the gnet and fasthttp
// logger adapters over one shared asynclog.Logger instance, rather than
// wiring each server's Logger field by hand.
type Builder struct {
	logger *asynclog.Logger
	err    error
}

// NewBuilder creates a new adapter builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// Recommended for applications that already have a central logger.
func (b *Builder) WithLogger(l *asynclog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// getLogger resolves the logger to use, building a stdout-only default
// one (named "compat") if none was provided via WithLogger.
func (b *Builder) getLogger() (*asynclog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}
	l, err := asynclog.NewBuilder("compat").Build()
	if err != nil {
		return nil, err
	}
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet-compatible logger adapter.
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp-compatible logger adapter.
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying *asynclog.Logger, building the default
// one first if none has been provided or created yet.
func (b *Builder) GetLogger() (*asynclog.Logger, error) {
	return b.getLogger()
}
