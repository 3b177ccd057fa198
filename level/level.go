// Package level defines the totally ordered severity scale used by asynclog.
package level

// Level is a log severity. Levels are totally ordered; higher values are
// more severe.
type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

// String renders the level padded with trailing spaces to 5 characters, matching the wire
// format in spec.md §6 (e.g. "INFO " with a trailing space, "DEBUG" with
// none).
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO "
	case Warn:
		return "WARN "
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNO"
	}
}

// Remote reports whether a record at this level must also be shipped to
// the remote backup endpoint (spec.md §4.4: ERROR and FATAL only).
func (l Level) Remote() bool {
	return l >= Error
}

// Valid reports whether l is one of the five defined levels.
func (l Level) Valid() bool {
	return l >= Debug && l <= Fatal
}
