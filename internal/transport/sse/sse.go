// Package sse provides the http/https transport using Server-Sent Events.
// It exists for agents that expose their thought stream over plain HTTP
// rather than a websocket.
package sse

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/crimson-sun/wisp/internal/transport"
)

const defaultResponseTimeout = 10 * time.Second

func init() {
	transport.Register("http", func(u *url.URL) transport.Dialer { return &Dialer{endpoint: u} })
	transport.Register("https", func(u *url.URL) transport.Dialer { return &Dialer{endpoint: u} })
}

// Dialer opens SSE connections to a fixed endpoint.
type Dialer struct {
	endpoint *url.URL

	// Client overrides the HTTP client; nil uses a default with response
	// header timeout only (the body is a long-lived stream).
	Client *http.Client
}

// NewDialer creates a Dialer for tests and direct wiring.
func NewDialer(u *url.URL) *Dialer {
	return &Dialer{endpoint: u}
}

func (d *Dialer) Dial(ctx context.Context) (transport.Conn, error) {
	client := d.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: defaultResponseTimeout},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("sse: HTTP %d", resp.StatusCode)
	}

	return &conn{resp: resp, scanner: bufio.NewScanner(resp.Body)}, nil
}

// conn reads SSE events off the response body. Only data lines matter;
// event/id/retry lines and comments are skipped. Multi-line data fields
// are joined with newlines per the SSE format.
type conn struct {
	resp      *http.Response
	scanner   *bufio.Scanner
	closeOnce sync.Once
}

func (c *conn) Receive(_ context.Context) ([]byte, error) {
	var data []string
	for c.scanner.Scan() {
		line := c.scanner.Text()
		switch {
		case line == "":
			if len(data) > 0 {
				return []byte(strings.Join(data, "\n")), nil
			}
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
		// Everything else (event:, id:, retry:, comments) is ignored.
	}
	if err := c.scanner.Err(); err != nil {
		return nil, err
	}
	// EOF with a trailing unterminated event still delivers it.
	if len(data) > 0 {
		return []byte(strings.Join(data, "\n")), nil
	}
	return nil, transport.ErrClosed
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.resp.Body.Close()
	})
	return err
}
