// Package buffer implements the elastic byte buffer used by the
// asynchronous hand-off worker: a contiguous append-only byte slice with
// two cursors and a hybrid growth policy.
//
// Buffer is NOT thread-safe. Callers (the worker in package worker) must
// provide external synchronization; this mirrors the reference
// asynlog::Buffer, which is likewise unsynchronized on its own.
package buffer

import "fmt"

// Buffer is a triple (bytes, writePos, readPos) with the invariant
// 0 <= readPos <= writePos <= len(bytes).
type Buffer struct {
	data     []byte
	writePos int
	readPos  int

	threshold    int
	linearGrowth int
}

// New creates an empty Buffer with the given initial capacity. threshold
// and linearGrowth parameterize the hybrid growth policy described in
// spec.md §3: below threshold, capacity triples on growth; at or above
// threshold, capacity grows by a fixed linearGrowth amount. Both must be
// chosen by the caller to cover any single record in one resize, since
// growth is one-shot per push.
func New(initialCapacity, threshold, linearGrowth int) *Buffer {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	if threshold <= 0 {
		threshold = 1
	}
	if linearGrowth <= 0 {
		linearGrowth = 1
	}
	return &Buffer{
		data:         make([]byte, initialCapacity),
		threshold:    threshold,
		linearGrowth: linearGrowth,
	}
}

// Writable returns the number of bytes that can be appended without growth.
func (b *Buffer) Writable() int {
	return len(b.data) - b.writePos
}

// Readable returns the number of unread bytes currently buffered.
func (b *Buffer) Readable() int {
	return b.writePos - b.readPos
}

// IsEmpty reports whether there is nothing left to read.
func (b *Buffer) IsEmpty() bool {
	return b.writePos == b.readPos
}

// Begin returns the unread slice [readPos:writePos]. The returned slice
// aliases the buffer's backing array and is only valid until the next
// mutating call.
func (b *Buffer) Begin() []byte {
	return b.data[b.readPos:b.writePos]
}

// Push appends data, growing the backing array first if necessary. Growth
// is one-shot: a single resize always makes room for the whole push (see
// grow).
func (b *Buffer) Push(data []byte) {
	if len(data) > b.Writable() {
		b.grow(len(data))
	}
	b.writePos += copy(b.data[b.writePos:], data)
}

// grow resizes the backing array in place, preserving bytes at their
// existing offsets (readPos..writePos survive the resize untouched).
//
// Growth is one-shot per push (spec.md §3). When the tripled or linearly
// grown capacity would not hold the push (including a zero starting
// capacity), the new capacity is raised to cur+need instead, so a single
// resize always covers the record being pushed.
func (b *Buffer) grow(need int) {
	cur := len(b.data)
	var newCap int
	if cur < b.threshold {
		newCap = cur * 3 // triple, matching the reference growth curve
	} else {
		newCap = cur + b.linearGrowth
	}
	if newCap <= cur+need {
		newCap = cur + need
	}
	grown := make([]byte, newCap)
	copy(grown, b.data[:b.writePos])
	b.data = grown
}

// AdvanceRead moves the read cursor forward by n bytes. It panics if
// n > Readable(), matching the reference's assert(len <= ReadableSize())
// — a cursor precondition violation is an internal worker bug, not a
// recoverable condition (spec.md §7).
func (b *Buffer) AdvanceRead(n int) {
	if n > b.Readable() {
		panic(fmt.Sprintf("buffer: advance_read(%d) exceeds readable(%d)", n, b.Readable()))
	}
	b.readPos += n
}

// AdvanceWrite moves the write cursor forward by n bytes. It panics if
// n > Writable().
func (b *Buffer) AdvanceWrite(n int) {
	if n > b.Writable() {
		panic(fmt.Sprintf("buffer: advance_write(%d) exceeds writable(%d)", n, b.Writable()))
	}
	b.writePos += n
}

// Reset sets both cursors back to zero without shrinking the backing
// array, so a drained buffer is immediately reusable at its grown
// capacity.
func (b *Buffer) Reset() {
	b.writePos = 0
	b.readPos = 0
}

// Swap exchanges the backing array and both cursors with other. This is
// the O(1) operation the double-buffer worker relies on to hand a batch
// from the producer role to the consumer role without copying.
func (b *Buffer) Swap(other *Buffer) {
	b.data, other.data = other.data, b.data
	b.writePos, other.writePos = other.writePos, b.writePos
	b.readPos, other.readPos = other.readPos, b.readPos
}

// Cap reports the current backing-array capacity, for tests and memory
// accounting (spec.md §5's "peak memory bounded by 2*max_observed_capacity").
func (b *Buffer) Cap() int {
	return len(b.data)
}
