package worker

import (
	"bytes"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{InitialCapacity: 64, Threshold: 1024, LinearGrowth: 256}
}

func TestWorker_SingleProducerRoundTrip(t *testing.T) {
	var mu sync.Mutex
	var got bytes.Buffer

	w := New(Safe, smallConfig(), func(batch []byte) {
		mu.Lock()
		got.Write(batch)
		mu.Unlock()
	})
	require.NoError(t, w.Push([]byte("hello\n")))
	w.Stop()

	assert.Equal(t, "hello\n", got.String())
}

func TestWorker_OrderingUnderContention(t *testing.T) {
	var mu sync.Mutex
	var got bytes.Buffer

	w := New(Safe, Config{InitialCapacity: 256, Threshold: 4096, LinearGrowth: 1024}, func(batch []byte) {
		mu.Lock()
		got.Write(batch)
		mu.Unlock()
	})

	const n = 1000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			require.NoError(t, w.Push([]byte("A"+strconv.Itoa(i)+"\n")))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			require.NoError(t, w.Push([]byte("B"+strconv.Itoa(i)+"\n")))
		}
	}()
	wg.Wait()
	w.Stop()

	lines := bytes.Split(bytes.TrimRight(got.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2*n)

	var aSeq, bSeq []string
	for _, l := range lines {
		s := string(l)
		if s[0] == 'A' {
			aSeq = append(aSeq, s[1:])
		} else {
			bSeq = append(bSeq, s[1:])
		}
	}
	require.Len(t, aSeq, n)
	require.Len(t, bSeq, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, strconv.Itoa(i), aSeq[i])
		assert.Equal(t, strconv.Itoa(i), bSeq[i])
	}
}

func TestWorker_StopDrainsPendingRecords(t *testing.T) {
	var mu sync.Mutex
	var count int

	w := New(Safe, smallConfig(), func(batch []byte) {
		mu.Lock()
		count += bytes.Count(batch, []byte("\n"))
		mu.Unlock()
	})
	for i := 0; i < 10; i++ {
		require.NoError(t, w.Push([]byte("rec\n")))
	}
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := New(Safe, smallConfig(), func(batch []byte) {})
	done := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return; likely hung on double-stop")
	}
}

func TestWorker_Backpressure(t *testing.T) {
	var mu sync.Mutex
	var total int

	w := New(Safe, Config{InitialCapacity: 64, Threshold: 64, LinearGrowth: 64}, func(batch []byte) {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		total += len(batch)
		mu.Unlock()
	})

	rec := bytes.Repeat([]byte("x"), 64)
	start := time.Now()
	for i := 0; i < 20; i++ {
		require.NoError(t, w.Push(rec))
	}
	w.Stop()
	elapsed := time.Since(start)

	assert.Equal(t, 20*64, total)
	// With a 64-byte buffer and a 5ms sink, 20 pushes of 64 bytes each force
	// at least some waiting — this is a loose sanity bound, not a strict
	// timing assertion.
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestWorker_UnsafeModeGrowsInsteadOfBlocking(t *testing.T) {
	release := make(chan struct{})
	w := New(Unsafe, Config{InitialCapacity: 8, Threshold: 16, LinearGrowth: 8}, func(batch []byte) {
		<-release
	})
	// The sink is blocked, but Unsafe-mode pushes must not block the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			_ = w.Push([]byte("0123456789"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unsafe mode push blocked")
	}
	close(release)
	w.Stop()
}
