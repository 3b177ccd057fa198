// Package compat adapts asynclog's Logger to the logging interfaces
// expected by third-party servers (fasthttp, gnet) so the same
// double-buffer worker and sink fan-out backs their internal diagnostics
// too, instead of each pulling in its own logging path.
package compat

import (
	"fmt"
	"strings"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/level"
)

// FastHTTPAdapter wraps an asynclog.Logger to implement fasthttp's
// Logger interface (a single Printf(format string, args ...any) method).
type FastHTTPAdapter struct {
	logger        *asynclog.Logger
	defaultLevel  level.Level
	levelDetector func(string) level.Level
}

// NewFastHTTPAdapter creates a fasthttp-compatible logger adapter over
// logger.
func NewFastHTTPAdapter(logger *asynclog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	a := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  level.Info,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FastHTTPOption customizes adapter behavior.
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when the detector is nil or returns
// a level outside the five defined ones. DetectLogLevel, the default
// detector, returns level.Info itself when no keyword matches.
func WithDefaultLevel(lvl level.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) { a.defaultLevel = lvl }
}

// WithLevelDetector overrides the message-content level detector.
func WithLevelDetector(detector func(string) level.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) { a.levelDetector = detector }
}

// Printf implements fasthttp.Logger.
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	lvl := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := detectedLevel(a.levelDetector(msg)); ok {
			lvl = detected
		}
	}

	switch lvl {
	case level.Debug:
		a.logger.Debug("fasthttp", 0, "%s", msg)
	case level.Warn:
		a.logger.Warn("fasthttp", 0, "%s", msg)
	case level.Error, level.Fatal:
		a.logger.Error("fasthttp", 0, "%s", msg)
	default:
		a.logger.Info("fasthttp", 0, "%s", msg)
	}
}

func detectedLevel(lvl level.Level) (level.Level, bool) {
	return lvl, lvl.Valid()
}

// DetectLogLevel guesses a severity from message content, for servers
// (like fasthttp) whose internal logger has no notion of levels.
func DetectLogLevel(msg string) level.Level {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"),
		strings.Contains(lower, "fatal"), strings.Contains(lower, "panic"):
		return level.Error
	case strings.Contains(lower, "warn"), strings.Contains(lower, "deprecated"):
		return level.Warn
	case strings.Contains(lower, "debug"), strings.Contains(lower, "trace"):
		return level.Debug
	default:
		return level.Info
	}
}
