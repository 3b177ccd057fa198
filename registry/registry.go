package registry

import (
	"sync"

	"github.com/asynclog/asynclog/internal/diag"
)

// defaultLoggerName is the registry key for the distinguished default
// logger created at first access (spec.md §3).
const defaultLoggerName = "default"

// Registry is a process-wide, mutex-guarded name→logger mapping with one
// distinguished default entry. The zero Registry is not usable; use New
// or the package-level process registry via Get/GetDefault/Add.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// New constructs an empty Registry. Most callers use the package-level
// process-wide registry instead; New exists for tests and for embedding
// asynclog in a larger process that wants isolated registries.
func New() *Registry {
	return &Registry{loggers: make(map[string]*Logger)}
}

// Add registers logger under its own name. It is a no-op if the name
// already exists (spec.md §4.7 and §12, mirroring the reference
// LoggerManager::AddLogger).
func (r *Registry) Add(l *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.loggers[l.name]; exists {
		return
	}
	r.loggers[l.name] = l
}

// Get returns the logger registered under name, or nil if none exists.
func (r *Registry) Get(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loggers[name]
}

// GetOrDefault returns the logger under name if registered, falling back
// to the distinguished default logger, creating it lazily (stdout sink
// only) on first access if it doesn't exist yet.
func (r *Registry) GetOrDefault(name string) *Logger {
	r.mu.Lock()
	l, ok := r.loggers[name]
	r.mu.Unlock()
	if ok {
		return l
	}
	return r.Default()
}

// Default returns the distinguished default logger, initializing it
// lazily on first access with a stdout-only sink list, per spec.md §3's
// "one distinguished default entry created at registry initialization...
// initialized on first access."
func (r *Registry) Default() *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[defaultLoggerName]; ok {
		return l
	}
	l, err := NewBuilder(defaultLoggerName).Build()
	if err != nil {
		// Build() with no sinks configured only constructs a stdout sink
		// and a worker, neither of which can fail; reaching this is a
		// library bug, not a runtime condition callers should handle.
		diag.Fatal("default logger construction failed", "error", err.Error())
	}
	r.loggers[defaultLoggerName] = l
	return l
}

// Names returns every registered logger name, for the optional HTTP
// introspection endpoint (spec.md §11).
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	return names
}

// process is the process-wide registry backing the package-level
// convenience functions, matching spec.md §9's "process-wide... lazily
// initialized process-global" design note.
var process = New()

// Add registers logger with the process-wide registry.
func Add(l *Logger) { process.Add(l) }

// Get returns the process-wide registry's logger for name, or nil.
func Get(name string) *Logger { return process.Get(name) }

// GetOrDefault returns the process-wide registry's logger for name,
// falling back to the default logger.
func GetOrDefault(name string) *Logger { return process.GetOrDefault(name) }

// GetDefault returns the process-wide default logger.
func GetDefault() *Logger { return process.Default() }
