//go:build !linux

package record

import (
	"bytes"
	"runtime"
	"strconv"
)

// ThreadID falls back to the calling goroutine's id on platforms where a
// native OS thread id isn't cheaply available through the pack's
// dependencies. It is clearly goroutine-, not thread-, scoped; spec.md §6
// only mandates "the platform's native rendering", and Go has no portable
// equivalent to gettid(2) outside Linux within this module's dependency
// graph.
func ThreadID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return "0"
	}
	id, err := strconv.Atoi(string(fields[1]))
	if err != nil {
		return "0"
	}
	return strconv.Itoa(id)
}
