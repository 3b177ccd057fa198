// Package record formats a single log line into the canonical wire layout
// shared by every sink and the remote backup endpoint (spec.md §3, §6):
//
//	[HH:MM:SS][<tid>][<LEVEL 5 chars>][<logger>][<file>:<line>]\t<payload>\n
//
// Once formatted a record is an immutable byte slice; nothing downstream
// mutates it in place.
package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/asynclog/asynclog/level"
)

// Format renders one record. now is passed in rather than read from
// time.Now() so callers (and tests) control the timestamp deterministically;
// the logger facade supplies wall-clock time at the call site.
func Format(now time.Time, lvl level.Level, logger, file string, line int, format string, args ...any) []byte {
	return FormatPayload(now, lvl, logger, file, line, fmt.Sprintf(format, args...))
}

// FormatPayload renders one record from an already-rendered payload,
// letting callers sanitize or otherwise transform the payload text (e.g.
// via package sanitizer) between printf-rendering and the canonical
// layout, without duplicating the layout logic in Format.
func FormatPayload(now time.Time, lvl level.Level, logger, file string, line int, payload string) []byte {
	buf := make([]byte, 0, 64+len(payload)+len(logger)+len(file))
	buf = append(buf, '[')
	buf = appendTwoDigit(buf, now.Hour())
	buf = append(buf, ':')
	buf = appendTwoDigit(buf, now.Minute())
	buf = append(buf, ':')
	buf = appendTwoDigit(buf, now.Second())
	buf = append(buf, ']', '[')
	buf = append(buf, ThreadID()...)
	buf = append(buf, ']', '[')
	buf = append(buf, lvl.String()...)
	buf = append(buf, ']', '[')
	buf = append(buf, logger...)
	buf = append(buf, ']', '[')
	buf = append(buf, file...)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(line), 10)
	buf = append(buf, ']', '\t')
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	return buf
}

func appendTwoDigit(buf []byte, v int) []byte {
	if v < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, int64(v), 10)
}
