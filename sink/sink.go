// Package sink implements the terminal consumers of formatted log records:
// standard output, an append-only file, and a size-rolled file (spec.md
// §4.5). Sinks are invoked exclusively by the worker's single consumer
// goroutine and are not required to be thread-safe on their own.
package sink

// FlushMode selects how aggressively a file-backed sink pushes bytes to
// stable storage after each write.
type FlushMode int

const (
	// FlushNone leaves bytes in OS buffers (flush_log = 0).
	FlushNone FlushMode = iota
	// FlushUser issues a user-space flush after each write (flush_log = 1).
	FlushUser
	// FlushSync issues a user-space flush followed by fsync (flush_log = 2).
	FlushSync
)

// Sink is a terminal consumer of a drained record batch. Flush is called by
// the worker's consumer goroutine with the batch's readable bytes; the
// slice is only valid for the duration of the call.
type Sink interface {
	Flush(batch []byte) error
	Close() error
}
