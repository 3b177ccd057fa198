//go:build linux

package record

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// ThreadID renders the calling OS thread's native id, matching spec.md §6's
// "thread id format is the platform's native rendering." On Linux this is
// the kernel thread id as returned by gettid(2).
//
// Go does not pin goroutines to OS threads, so this value can differ
// between two log calls made from what looks like "the same" goroutine if
// the scheduler migrates it; this mirrors the native-thread-id intent of
// the reference implementation, which assumed one OS thread per call site.
func ThreadID() string {
	return strconv.Itoa(unix.Gettid())
}
