// Command stress hammers a single Logger from many goroutines with
// variable-length messages, to exercise the double-buffer worker's growth
// behavior under contention. The logger runs in Unsafe mode, so producers
// never block on a full buffer.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/asynclog/asynclog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 4000
	numWorkers     = 500
)

const logDirectory = "./logs"

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

func logBurst(logger *asynclog.Logger, burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		msgSize := rand.Intn(maxMessageSize) + 10
		msg := generateRandomMessage(msgSize)
		switch rand.Intn(4) {
		case 0:
			logger.Debug("stress", 0, "wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg)
		case 1:
			logger.Info("stress", 0, "wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg)
		case 2:
			logger.Warn("stress", 0, "wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg)
		case 3:
			logger.Error("stress", 0, "wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg)
		}
	}
}

func worker(logger *asynclog.Logger, burstChan chan int, wg *sync.WaitGroup, completed *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(logger, burstID)
		n := completed.Add(1)
		if n%10 == 0 || n == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", n, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	_ = os.RemoveAll(logDirectory)

	logger, err := asynclog.NewBuilder("stress").
		Mode(asynclog.Unsafe).
		WithRollingFile(logDirectory+"/stress", 1<<20, asynclog.FlushNone).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", logDirectory)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	var completed atomic.Int64
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[signal received] stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(logger, burstChan, &wg, &completed)
	}

	start := time.Now()
burstLoop:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[signal received] halting burst submission.")
			break burstLoop
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(start)
	final := completed.Load()

	fmt.Printf("\n--- Test Finished ---\n")
	fmt.Printf("Completed %d/%d bursts in %v\n", final, totalBursts, duration.Round(time.Millisecond))
	if final > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(final*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate logs/sec: %.2f\n", logsPerSec)
	}

	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Printf("Check log files in '%s'.\n", logDirectory)
}
