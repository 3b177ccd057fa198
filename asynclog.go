// Package asynclog is an asynchronous, multi-sink, leveled logging
// library for server-class processes. Producers call level-tagged
// operations on named loggers from any number of goroutines; each logger
// formats the record, hands it to a double-buffer worker across a
// goroutine boundary with bounded memory, and a single consumer fans it
// out to one or more sinks, optionally shipping ERROR/FATAL records to a
// remote backup endpoint over TCP.
//
// The asynchronous hand-off engine (package worker) and the thread pool
// (package pool) are the core; everything in this file is a thin
// convenience layer over the registry and builder in package registry.
package asynclog

import (
	"github.com/asynclog/asynclog/pool"
	"github.com/asynclog/asynclog/registry"
	"github.com/asynclog/asynclog/sink"
	"github.com/asynclog/asynclog/worker"
)

// Logger is the logging facade returned by GetLogger/GetDefaultLogger and
// constructed by Builder (spec.md §3, §4.4).
type Logger = registry.Logger

// Builder is the fluent constructor for a Logger (spec.md §4.7).
type Builder = registry.Builder

// Mode selects producer backpressure behavior; see Safe and Unsafe.
type Mode = worker.Mode

// FlushMode selects how aggressively a file-backed sink pushes bytes to
// stable storage.
type FlushMode = sink.FlushMode

const (
	Safe   = worker.Safe
	Unsafe = worker.Unsafe
)

const (
	FlushNone = sink.FlushNone
	FlushUser = sink.FlushUser
	FlushSync = sink.FlushSync
)

// NewBuilder starts building a logger named name (spec.md §4.7).
func NewBuilder(name string) *Builder {
	return registry.NewBuilder(name)
}

// GetLogger returns the process-wide registry's logger for name, or nil
// if none has been registered under that name (spec.md §6's
// "get_logger(name)").
func GetLogger(name string) *Logger {
	return registry.Get(name)
}

// GetDefaultLogger returns the process-wide default logger, initializing
// it lazily with a stdout sink on first access (spec.md §6's
// "get_default_logger()").
func GetDefaultLogger() *Logger {
	return registry.GetDefault()
}

// Register adds logger to the process-wide registry under its own name.
// It is a no-op if the name is already registered (spec.md §4.7).
func Register(l *Logger) {
	registry.Add(l)
}

// NewPool constructs a fixed-size thread pool, typically shared across
// every logger that ships records to the same remote backup endpoint
// (spec.md §4.3).
func NewPool(size int) *pool.Pool {
	return pool.New(size)
}
