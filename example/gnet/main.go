// Command gnet demonstrates wiring asynclog into a gnet/v2 server's
// internal diagnostics via compat.GnetAdapter, so the echo server's own
// accept/error/close logging flows through the same double-buffer worker
// and file sink as the application's own log calls.
package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/compat"
)

type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := asynclog.NewBuilder("gnet-echo").
		WithFile("/var/log/gnet/echo.log", asynclog.FlushUser).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
