// Command backupserver is a minimal stand-in for the remote backup
// endpoint that backup.Client ships ERROR/FATAL records to (spec.md §4.6).
// It is explicitly NOT production server code: it exists to make the
// remote-ship path exercisable end-to-end in tests and in this example,
// matching spec.md §6's server-side contract — read once per connection
// (up to ~1 KiB), prepend "client_ip:client_port", and log the result.
package main

import (
	"flag"
	"fmt"

	"github.com/panjf2000/gnet/v2"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/compat"
)

const maxRecordSize = 1024

// backupServer accepts connections, reads at most one ~1 KiB record per
// connection, and logs it prefixed with the remote address.
type backupServer struct {
	gnet.BuiltinEventEngine
	logger *asynclog.Logger
}

func (s *backupServer) OnTraffic(c gnet.Conn) gnet.Action {
	n := c.InboundBuffered()
	if n > maxRecordSize {
		n = maxRecordSize
	}
	buf, err := c.Next(n)
	if err != nil {
		s.logger.Warn("backupserver", 0, "read error from %s: %v", c.RemoteAddr(), err)
		return gnet.Close
	}

	s.logger.Info("backupserver", 0, "%s:%s", c.RemoteAddr(), buf)
	return gnet.Close
}

func main() {
	addr := flag.String("addr", "tcp://127.0.0.1:9999", "listen address for the backup stub")
	flag.Parse()

	logger, err := asynclog.NewBuilder("backupserver").WithStdout().Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	gnetLogger := compat.NewGnetAdapter(logger)

	srv := &backupServer{logger: logger}
	fmt.Printf("backupserver listening on %s\n", *addr)
	err = gnet.Run(srv, *addr, gnet.WithLogger(gnetLogger), gnet.WithMulticore(true))
	if err != nil {
		panic(err)
	}
}
