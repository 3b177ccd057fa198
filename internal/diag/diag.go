// Package diag is asynclog's internal diagnostics logger: the channel
// through which the library reports its OWN operational failures (sink
// I/O errors, pool-closed notices, rotation/disk errors, configuration
// load failures) as distinct from the leveled records producers emit
// through the logger facade. See SPEC_FULL.md §10.1.
package diag

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger *zap.Logger
)

func build(w io.Writer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapcore.WarnLevel,
	)
	return zap.New(core).Named("asynclog")
}

func get() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = build(os.Stderr)
	}
	return logger
}

// Warn reports a recoverable internal failure: sink I/O errors, a
// pool-closed-on-submit condition, a rotation failure. These never
// propagate to producer threads (spec.md §7); this is the sink.
func Warn(msg string, kv ...any) {
	get().Sugar().Warnw(msg, kv...)
}

// Error reports a more serious internal failure, such as a configuration
// load error at init. Remote-ship failures are reported through Warn.
func Error(msg string, kv ...any) {
	get().Sugar().Errorw(msg, kv...)
}

// Fatal marks an internal invariant violation — a cursor precondition
// failure or similar worker bug (spec.md §7's "fatal assertion"). It logs
// and then panics; callers are not expected to recover from this.
func Fatal(msg string, kv ...any) {
	get().Sugar().Errorw(msg, kv...)
	panic(msg)
}

// SetOutput redirects the internal diagnostics logger to w, primarily for
// tests that want to assert on diagnostic output instead of polluting the
// real stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = build(w)
}
