package compat

import (
	"fmt"
	"os"

	"github.com/asynclog/asynclog"
)

// GnetAdapter wraps an asynclog.Logger to implement gnet's logging.Logger
// interface (Debugf/Infof/Warnf/Errorf/Fatalf), so a gnet-based server
// (such as example/backupserver) logs through the same double-buffer
// worker and sink fan-out as the rest of the process.
type GnetAdapter struct {
	logger       *asynclog.Logger
	fatalHandler func(msg string)
}

// NewGnetAdapter creates a gnet-compatible logger adapter over logger.
func NewGnetAdapter(logger *asynclog.Logger, opts ...GnetOption) *GnetAdapter {
	a := &GnetAdapter{
		logger:       logger,
		fatalHandler: func(string) { os.Exit(1) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GnetOption customizes adapter behavior.
type GnetOption func(*GnetAdapter)

// WithFatalHandler overrides the default os.Exit(1) fatal behavior.
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) { a.fatalHandler = handler }
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debug("gnet", 0, format, args...)
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info("gnet", 0, format, args...)
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn("gnet", 0, format, args...)
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error("gnet", 0, format, args...)
}

// Fatalf logs at ERROR severity — which, per spec.md §4.4, blocks until
// any configured remote-ship attempt completes — then invokes the fatal
// handler. This ordering ensures the record is at least queued and
// remote-shipped before the process potentially exits.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.logger.Error("gnet", 0, format, args...)
	a.fatalHandler(fmt.Sprintf(format, args...))
}
