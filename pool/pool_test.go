package pool

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_SubmitAndWait(t *testing.T) {
	p := New(2)
	defer p.Stop()

	fut, err := p.Submit(func() (any, error) { return 42, nil })
	require.NoError(t, err)
	res := fut.Wait()
	assert.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
}

func TestPool_TaskErrorSurfaces(t *testing.T) {
	p := New(1)
	defer p.Stop()

	wantErr := errors.New("boom")
	fut, err := p.Submit(func() (any, error) { return nil, wantErr })
	require.NoError(t, err)
	res := fut.Wait()
	assert.Equal(t, wantErr, res.Err)
}

func TestPool_PanicIsolated(t *testing.T) {
	p := New(1)
	defer p.Stop()

	fut, err := p.Submit(func() (any, error) { panic("kaboom") })
	require.NoError(t, err)
	res := fut.Wait()
	assert.Error(t, res.Err)

	// The pool must still accept and run work after a panicking task.
	fut2, err := p.Submit(func() (any, error) { return "alive", nil })
	require.NoError(t, err)
	assert.Equal(t, "alive", fut2.Wait().Value)
}

func TestPool_SubmitAfterStopFails(t *testing.T) {
	p := New(1)
	p.Stop()

	_, err := p.Submit(func() (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPool_StopIsIdempotent(t *testing.T) {
	p := New(2)
	done := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("double Stop() hung")
	}
}

func TestPool_FIFOSubmissionOrder(t *testing.T) {
	p := New(1) // single worker makes execution order deterministic
	defer p.Stop()

	var mu sync.Mutex
	var order []int
	var futs []*Future
	for i := 0; i < 50; i++ {
		i := i
		f, err := p.Submit(func() (any, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		})
		require.NoError(t, err)
		futs = append(futs, f)
	}
	for _, f := range futs {
		f.Wait()
	}

	mu.Lock()
	defer mu.Unlock()
	for i := range order {
		assert.Equal(t, i, order[i])
	}
}

func TestPool_EveryAcceptedSubmissionCompletes(t *testing.T) {
	p := New(4)
	defer p.Stop()

	const n = 200
	futs := make([]*Future, n)
	for i := 0; i < n; i++ {
		f, err := p.Submit(func() (any, error) { return nil, nil })
		require.NoError(t, err)
		futs[i] = f
	}
	for _, f := range futs {
		res := f.Wait()
		assert.NoError(t, res.Err)
	}
}
