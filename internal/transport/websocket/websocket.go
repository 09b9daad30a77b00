// Package websocket provides the ws/wss transport backed by
// gorilla/websocket.
package websocket

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/crimson-sun/wisp/internal/transport"
)

const defaultHandshakeTimeout = 10 * time.Second

func init() {
	transport.Register("ws", func(u *url.URL) transport.Dialer { return &Dialer{endpoint: u} })
	transport.Register("wss", func(u *url.URL) transport.Dialer { return &Dialer{endpoint: u} })
}

// Dialer opens websocket connections to a fixed endpoint.
type Dialer struct {
	endpoint *url.URL
}

// NewDialer creates a Dialer for tests and direct wiring. Production code
// resolves dialers through the transport registry.
func NewDialer(u *url.URL) *Dialer {
	return &Dialer{endpoint: u}
}

func (d *Dialer) Dial(ctx context.Context) (transport.Conn, error) {
	wsDialer := websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout}
	ws, resp, err := wsDialer.DialContext(ctx, d.endpoint.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &conn{ws: ws}, nil
}

// conn adapts a *websocket.Conn to transport.Conn.
type conn struct {
	ws        *websocket.Conn
	closeOnce sync.Once
}

// Receive reads the next text or binary frame. Control frames are handled
// by gorilla internally. A normal or going-away close becomes ErrClosed.
func (c *conn) Receive(ctx context.Context) ([]byte, error) {
	type frame struct {
		data []byte
		err  error
	}
	ch := make(chan frame, 1)
	go func() {
		_, data, err := c.ws.ReadMessage()
		ch <- frame{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		c.Close()
		return nil, ctx.Err()
	case fr := <-ch:
		if fr.err != nil {
			if websocket.IsCloseError(fr.err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, transport.ErrClosed
			}
			return nil, fr.err
		}
		return fr.data, nil
	}
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.ws.Close()
	})
	return err
}
