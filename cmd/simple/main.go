// Command simple is a minimal end-to-end demonstration: load the
// process-wide config (falling back to defaults via config.LoadErgonomic
// when no file is present), build a logger from it, log from a few
// goroutines, and shut down cleanly.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/config"
	"github.com/asynclog/asynclog/worker"
)

const configFile = "simple_config.json"

func main() {
	fmt.Println("--- Simple Logger Example ---")

	cfg, err := config.LoadErgonomic(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Config: buffer_size=%d threshold=%d thread_count=%d\n",
		cfg.BufferSize, cfg.Threshold, cfg.ThreadCount)

	logger, err := asynclog.NewBuilder("simple").
		BufferConfig(worker.Config{
			InitialCapacity: int(cfg.BufferSize),
			Threshold:       int(cfg.Threshold),
			LinearGrowth:    int(cfg.LinearGrowth),
		}).
		WithFile("./simple_logs/simple.log", cfg.FlushLog).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	logger.Debug("simple", 0, "this is a debug message, user_id=%d", 123)
	logger.Info("simple", 0, "application starting...")
	logger.Warn("simple", 0, "potential issue detected, threshold=%.2f", 0.95)
	logger.Error("simple", 0, "an error occurred, code=%d", 500)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("simple", 0, "goroutine %d started", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			logger.Info("simple", 0, "goroutine %d finished", id)
		}(i)
	}
	wg.Wait()
	fmt.Println("Goroutines finished.")

	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Println("Check log files in './simple_logs'.")
}
