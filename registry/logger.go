// Package registry implements the logger facade (spec.md §4.4), the
// process-wide name→logger registry, and the fluent builder that
// constructs loggers (spec.md §4.7) — the three collaborators the core
// hand-off engine and thread pool are built to serve.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/asynclog/asynclog/backup"
	"github.com/asynclog/asynclog/internal/diag"
	"github.com/asynclog/asynclog/level"
	"github.com/asynclog/asynclog/pool"
	"github.com/asynclog/asynclog/record"
	"github.com/asynclog/asynclog/sanitizer"
	"github.com/asynclog/asynclog/sink"
	"github.com/asynclog/asynclog/worker"
)

// Logger is the immutable tuple (name, mode, worker, sink list) from
// spec.md §3. It owns its worker exclusively; sinks may be shared across
// loggers, though one-to-one is the typical usage.
type Logger struct {
	name  string
	mode  worker.Mode
	sinks []sink.Sink

	w    *worker.Worker
	pool *pool.Pool           // shared remote-shipping pool; nil disables remote shipping
	bc   *backup.Client       // nil disables remote shipping
	san  *sanitizer.Sanitizer // nil means payload passes through unmodified

	stopOnce sync.Once
}

// newLogger wires a worker whose callback fans a drained batch out to every
// configured sink, isolating each sink's failure from the others (spec.md
// §4.2's failure model: a sink may log to stderr and continue).
func newLogger(name string, mode worker.Mode, cfg worker.Config, sinks []sink.Sink, p *pool.Pool, bc *backup.Client, san *sanitizer.Sanitizer) *Logger {
	l := &Logger{name: name, mode: mode, sinks: sinks, pool: p, bc: bc, san: san}
	l.w = worker.New(mode, cfg, l.fanOut)
	return l
}

func (l *Logger) fanOut(batch []byte) {
	for _, s := range l.sinks {
		if err := s.Flush(batch); err != nil {
			diag.Warn("sink flush failed", "logger", l.name, "error", err.Error())
		}
	}
}

// Name returns the logger's registry name.
func (l *Logger) Name() string { return l.name }

// Debug logs at DEBUG severity.
func (l *Logger) Debug(file string, line int, format string, args ...any) {
	l.log(level.Debug, file, line, format, args...)
}

// Info logs at INFO severity.
func (l *Logger) Info(file string, line int, format string, args ...any) {
	l.log(level.Info, file, line, format, args...)
}

// Warn logs at WARN severity.
func (l *Logger) Warn(file string, line int, format string, args ...any) {
	l.log(level.Warn, file, line, format, args...)
}

// Error logs at ERROR severity. Per spec.md §4.4, this blocks until the
// remote-ship attempt (if configured) has completed before returning.
func (l *Logger) Error(file string, line int, format string, args ...any) {
	l.log(level.Error, file, line, format, args...)
}

// Fatal logs at FATAL severity. It has the same synchronous remote-ship
// wait as Error; spec.md §9 requires this so a crash immediately following
// a FATAL record does not lose the remote copy. Fatal does NOT terminate
// the process — that policy decision is left to the caller.
func (l *Logger) Fatal(file string, line int, format string, args ...any) {
	l.log(level.Fatal, file, line, format, args...)
}

// log is the core per-level operation (spec.md §4.4): format the record,
// push it to the worker, and for ERROR/FATAL synchronously await the
// remote-ship task.
func (l *Logger) log(lvl level.Level, file string, line int, format string, args ...any) {
	payload := fmt.Sprintf(format, args...)
	if l.san != nil {
		payload = l.san.Sanitize(payload)
	}
	rec := record.FormatPayload(time.Now(), lvl, l.name, file, line, payload)

	if err := l.w.Push(rec); err != nil {
		// Only reachable in Unsafe mode on allocation failure (spec.md §7).
		diag.Warn("push failed", "logger", l.name, "error", err.Error())
		reportDropped()
	}

	if lvl.Remote() && l.pool != nil && l.bc != nil {
		l.shipRemote(rec)
	}
}

// shipRemote submits the remote-ship task and blocks until it completes,
// per spec.md §4.4 and §9. A closed pool is reported to stderr and
// otherwise ignored: the local log has already been queued, and spec.md §7
// says pool-closed "never aborts the producer."
func (l *Logger) shipRemote(rec []byte) {
	fut, err := l.pool.Submit(func() (any, error) {
		return nil, l.bc.Ship(rec)
	})
	if err != nil {
		if errors.Is(err, pool.ErrClosed) {
			diag.Warn("remote ship skipped, pool closed", "logger", l.name)
			return
		}
		diag.Warn("remote ship submit failed", "logger", l.name, "error", err.Error())
		return
	}

	res := fut.Wait()
	if res.Err != nil {
		diag.Warn("remote ship failed", "logger", l.name, "error", res.Err.Error())
	}
}

// Shutdown stops the worker (draining any queued records, per spec.md
// §4.2's destructor-calls-stop contract) and closes every sink. It does
// not touch the shared remote-shipping pool, which outlives any single
// logger. Shutdown is idempotent; the second call returns nil.
func (l *Logger) Shutdown() error {
	var closeErr error
	l.stopOnce.Do(func() {
		l.w.Stop()
		for _, s := range l.sinks {
			if err := s.Close(); err != nil {
				diag.Warn("sink close failed", "logger", l.name, "error", err.Error())
				closeErr = multierr.Append(closeErr, err)
			}
		}
	})
	return closeErr
}
