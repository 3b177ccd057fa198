// Package backup implements the remote backup client (spec.md §4.6): a
// bounded-retry TCP connect, a single write of the record bytes, and a
// close. It is invoked ONLY through the thread pool — never on a producer
// goroutine — grounded on the reference start_log_backup's retry loop in
// original_source/log_sys/src/backup/ClientBackup.hpp.
package backup

import (
	"fmt"
	"net"
	"time"
)

// maxConnectAttempts matches the reference's fixed 5-attempt retry budget.
const maxConnectAttempts = 5

// Client ships formatted records to a fixed backup_addr:backup_port
// endpoint over TCP.
type Client struct {
	addr string
	// dialTimeout bounds each individual connect attempt so a dead
	// endpoint cannot stall a retry pass indefinitely.
	dialTimeout time.Duration
}

// New returns a Client targeting host:port.
func New(host string, port uint16) *Client {
	return &Client{
		addr:        fmt.Sprintf("%s:%d", host, port),
		dialTimeout: 2 * time.Second,
	}
}

// Ship makes up to maxConnectAttempts connect attempts, writes record
// verbatim, and closes. It returns the last connect error if every attempt
// fails; a write error is also returned. Per spec.md §4.6 and §7, the
// caller (the pool-submitted task) logs and discards this error — shipping
// failure never affects the local log.
func (c *Client) Ship(record []byte) error {
	var conn net.Conn
	var err error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		conn, err = net.DialTimeout("tcp", c.addr, c.dialTimeout)
		if err == nil {
			break
		}
		if attempt == maxConnectAttempts {
			return fmt.Errorf("backup: connect to %s failed after %d attempts: %w", c.addr, maxConnectAttempts, err)
		}
	}
	defer conn.Close()

	if _, err := conn.Write(record); err != nil {
		return fmt.Errorf("backup: write to %s: %w", c.addr, err)
	}
	return nil
}
