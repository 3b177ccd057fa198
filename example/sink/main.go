// Command sink demonstrates each of asynclog's sink implementations —
// stdout, append-only file, and size-rolled file — and fans the same
// records out to stdout and a file at once.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/asynclog/asynclog"
)

const logDirectory = "./temp_logs"

func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("warning: could not remove old log directory: %v\n", err)
	}
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		fmt.Printf("fatal: could not create log directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- SCENARIO 1: stdout only ---")
	stdoutOnly()

	fmt.Println("\n--- SCENARIO 2: append-only file ---")
	fileOnly()

	fmt.Println("\n--- SCENARIO 3: size-rolled file ---")
	rollingFile()

	fmt.Println("\n--- SCENARIO 4: stdout + file fan-out ---")
	dualSink()

	fmt.Printf("\nCheck the '%s' directory for log files.\n", logDirectory)
}

func stdoutOnly() {
	logger, err := asynclog.NewBuilder("stdout-demo").WithStdout().Build()
	must(err)
	emit(logger)
	must(logger.Shutdown())
}

func fileOnly() {
	logger, err := asynclog.NewBuilder("file-demo").
		WithFile(logDirectory+"/file_only.log", asynclog.FlushUser).
		Build()
	must(err)
	emit(logger)
	must(logger.Shutdown())
}

func rollingFile() {
	logger, err := asynclog.NewBuilder("rolling-demo").
		WithRollingFile(logDirectory+"/rolling", 4096, asynclog.FlushUser).
		Build()
	must(err)
	for i := 0; i < 200; i++ {
		logger.Info("rolling-demo", 0, "record %d of the rolling-file demo burst", i)
	}
	must(logger.Shutdown())
}

func dualSink() {
	logger, err := asynclog.NewBuilder("dual-demo").
		WithStdout().
		WithFile(logDirectory+"/dual.log", asynclog.FlushSync).
		Build()
	must(err)
	emit(logger)
	must(logger.Shutdown())
}

func emit(logger *asynclog.Logger) {
	logger.Debug("demo", 0, "this is a debug message")
	logger.Info("demo", 0, "this is an info message")
	logger.Warn("demo", 0, "this is a warning message")
	logger.Error("demo", 0, "this is an error message")
	time.Sleep(50 * time.Millisecond)
}

func must(err error) {
	if err != nil {
		fmt.Printf("fatal: %v\n", err)
		os.Exit(1)
	}
}
