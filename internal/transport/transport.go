// Package transport defines the streaming connection abstraction and a
// scheme registry for concrete implementations.
package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned by Receive after the peer closed the connection
// cleanly, and by operations on a locally closed Conn.
var ErrClosed = errors.New("transport: connection closed")

// Conn is one live streaming connection delivering frames in wire order.
type Conn interface {
	// Receive blocks until the next frame arrives. A clean peer close is
	// reported as ErrClosed; any other error is a transport failure.
	Receive(ctx context.Context) ([]byte, error)

	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Dialer opens connections to a fixed endpoint. One Dialer serves one
// logical stream subscription; each Dial yields an independent Conn.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}
