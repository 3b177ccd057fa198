// Package worker implements the asynchronous hand-off engine: a pair of
// elastic buffers in producer/consumer roles, guarded by one mutex and two
// condition variables, drained by a single consumer goroutine. This is the
// core of asynclog (spec.md §4.2) — everything else in the module is a
// collaborator around it.
package worker

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/asynclog/asynclog/buffer"
	"github.com/asynclog/asynclog/internal/diag"
)

// Mode selects backpressure behavior. Safe blocks producers when the
// producer-role buffer cannot hold a push without growth; Unsafe lets the
// buffer grow unbounded instead of blocking.
type Mode int

const (
	Safe Mode = iota
	Unsafe
)

// Callback is invoked by the consumer goroutine with the drained batch's
// readable bytes. It runs without the worker mutex held, so a slow sink
// blocks nothing but the next swap.
type Callback func(batch []byte)

// Config bundles the buffer sizing parameters shared by both the
// producer-role and consumer-role elastic buffers.
type Config struct {
	InitialCapacity int
	Threshold       int
	LinearGrowth    int
}

// Worker owns the double-buffer hand-off and its single consumer
// goroutine. The zero Worker is not usable; construct with New.
type Worker struct {
	mode Mode
	cb   Callback

	mu         sync.Mutex
	cvProducer *sync.Cond // producers wait here for writable space (Safe mode only)
	cvConsumer *sync.Cond // consumer waits here for data or stop
	producer   *buffer.Buffer
	consumer   *buffer.Buffer
	stop       bool

	stopOnce sync.Once
	group    *errgroup.Group
}

// New constructs a Worker and immediately starts its consumer goroutine.
// callback is owned by the caller (typically the logger facade's sink
// fan-out closure) and must not itself call back into the worker.
func New(mode Mode, cfg Config, callback Callback) *Worker {
	w := &Worker{
		mode:     mode,
		cb:       callback,
		producer: buffer.New(cfg.InitialCapacity, cfg.Threshold, cfg.LinearGrowth),
		consumer: buffer.New(cfg.InitialCapacity, cfg.Threshold, cfg.LinearGrowth),
	}
	w.cvProducer = sync.NewCond(&w.mu)
	w.cvConsumer = sync.NewCond(&w.mu)

	var g errgroup.Group
	w.group = &g
	g.Go(func() error {
		w.consumeLoop()
		return nil
	})
	return w
}

// Push hands a formatted record to the worker. In Safe mode, if the
// record would not fit in the producer buffer without growth, Push blocks
// on cvProducer until space frees up or Stop is called. In Unsafe mode the
// buffer grows without bound instead of blocking; an allocation failure
// during that growth is recovered and returned as an error, per spec.md §7.
func (w *Worker) Push(data []byte) (err error) {
	if len(data) == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			// The only panicking call, producer.Push, runs with w.mu held.
			w.mu.Unlock()
			if w.mode == Unsafe {
				err = fmt.Errorf("worker: allocation failure pushing %d bytes: %v", len(data), r)
				return
			}
			panic(r) // a Safe-mode panic is a cursor precondition bug, not recoverable here
		}
	}()

	w.mu.Lock()
	if w.mode == Safe {
		for len(data) > w.producer.Writable() && !w.stop {
			w.cvProducer.Wait()
		}
	}
	w.producer.Push(data)
	w.mu.Unlock()

	w.cvConsumer.Signal()
	return nil
}

// Stop is idempotent: it sets the stop flag, wakes both the consumer and
// any blocked producers, and joins the consumer goroutine after it has
// drained whatever remained in the producer buffer. A second call is a
// no-op that returns immediately.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stop = true
		w.mu.Unlock()

		w.cvConsumer.Broadcast()
		w.cvProducer.Broadcast() // release any Safe-mode producer blocked on full buffer

		_ = w.group.Wait()
	})
}

// consumeLoop is the single consumer goroutine started by New. It mirrors
// the reference AsynWorker::ThreadEntry: wait for data or stop, swap
// buffers under the lock, then run the callback outside the lock, and
// exit only once a stop has been observed with the producer buffer empty
// (guaranteeing at least one more swap-and-flush after Stop is called
// while data is in flight).
func (w *Worker) consumeLoop() {
	for {
		w.mu.Lock()
		for !w.stop && w.producer.IsEmpty() {
			w.cvConsumer.Wait()
		}
		w.producer.Swap(w.consumer)
		if w.mode == Safe {
			w.cvProducer.Signal()
		}
		stopping := w.stop
		drained := w.producer.IsEmpty()
		w.mu.Unlock()

		if w.consumer.Readable() > 0 {
			w.runCallback()
			w.consumer.Reset()
		}

		if stopping && drained {
			return
		}
	}
}

// runCallback invokes the fan-out callback, isolating any panic from a
// misbehaving sink so the consumer goroutine never dies mid-drain
// (spec.md §4.2's failure model: sink errors are isolated, the worker
// does not abort).
func (w *Worker) runCallback() {
	defer func() {
		if r := recover(); r != nil {
			diag.Warn("sink callback panicked, record batch dropped", "panic", fmt.Sprintf("%v", r))
		}
	}()
	w.cb(w.consumer.Begin())
}
