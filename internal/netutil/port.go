package netutil

import (
	"context"
	"fmt"
	"net"
	"time"
)

// IsPortOpen reports whether something is listening on address:port.
func IsPortOpen(address string, port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", address, port), time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// WaitForPort polls until address:port accepts connections or the context
// ends. Used after launching a browser to wait for the debugging endpoint.
func WaitForPort(ctx context.Context, address string, port int, interval time.Duration) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if IsPortOpen(address, port) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s:%d: %w", address, port, ctx.Err())
		case <-ticker.C:
		}
	}
}
