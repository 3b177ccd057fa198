// Command fasthttp demonstrates wiring asynclog into a fasthttp.Server's
// internal diagnostics via compat.FastHTTPAdapter, with a custom level
// detector layered on top of the adapter's keyword-based default.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/compat"
	"github.com/asynclog/asynclog/level"
)

func main() {
	logger, err := asynclog.NewBuilder("fasthttp-server").
		WithFile("/var/log/fasthttp/server.log", asynclog.FlushUser).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(level.Info),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) level.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return level.Warn
	}
	if strings.Contains(msg, "error when serving connection") {
		return level.Error
	}
	return compat.DetectLogLevel(msg)
}
