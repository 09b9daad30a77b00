// Package client owns the streaming connection lifecycle: dialing,
// failure classification, the bounded-retry reconnect policy, and feeding
// decoded messages into the bounded log.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
	"github.com/crimson-sun/wisp/internal/scheduler"
	"github.com/crimson-sun/wisp/internal/streamlog"
	"github.com/crimson-sun/wisp/internal/transport"
	"github.com/crimson-sun/wisp/internal/wire"
)

// Params configures a Client. Dialer and Log are required.
type Params struct {
	Dialer   transport.Dialer
	Log      *streamlog.Log
	Renderer render.Renderer

	// Scheduler drives the reconnect delay. Nil uses wall-clock timers.
	Scheduler scheduler.Scheduler

	// ReconnectAttempts caps automatic reconnects after failure. Zero
	// disables automatic reconnection entirely.
	ReconnectAttempts int

	// ReconnectDelay is the fixed wait between a failure and the next
	// connection attempt. Deliberately not exponential: the cap, not the
	// curve, bounds total retry effort.
	ReconnectDelay time.Duration
}

// Client maintains one streaming subscription. It owns at most one live
// transport connection at a time and serializes all state mutation, log
// appends, and renderer notifications under one lock, so observers see a
// single ordered event stream.
type Client struct {
	dialer      transport.Dialer
	log         *streamlog.Log
	renderer    render.Renderer
	sched       scheduler.Scheduler
	maxAttempts int
	delay       time.Duration

	mu       sync.Mutex
	state    model.ConnectionState
	attempts int
	gen      uint64 // session generation; bumped by Open and Close
	conn     transport.Conn
	timer    scheduler.Timer
	cancel   context.CancelFunc
}

// New validates params and creates a Client in the Disconnected state. No
// transport is opened until Open is called.
func New(p Params) (*Client, error) {
	if p.Dialer == nil {
		return nil, errors.New("client: dialer is required")
	}
	if p.Log == nil {
		return nil, errors.New("client: log is required")
	}
	if p.ReconnectAttempts < 0 {
		return nil, fmt.Errorf("client: reconnect attempts must be >= 0, got %d", p.ReconnectAttempts)
	}
	if p.ReconnectDelay < 0 {
		return nil, fmt.Errorf("client: reconnect delay must be >= 0, got %v", p.ReconnectDelay)
	}
	if p.Renderer == nil {
		p.Renderer = render.Nop{}
	}
	if p.Scheduler == nil {
		p.Scheduler = scheduler.Wall{}
	}
	return &Client{
		dialer:      p.Dialer,
		log:         p.Log,
		renderer:    p.Renderer,
		sched:       p.Scheduler,
		maxAttempts: p.ReconnectAttempts,
		delay:       p.ReconnectDelay,
		state:       model.Disconnected,
	}, nil
}

// Open starts a new connection session. Any prior session — live
// connection, pending reconnect timer — is torn down first, so at most one
// transport exists per client. Resets the retry budget on successful
// handshake. Safe to call from any state, including Exhausted.
func (c *Client) Open() {
	c.mu.Lock()
	c.teardownLocked()
	c.gen++
	gen := c.gen
	ctx := c.newSessionLocked()
	c.setStateLocked(model.Connecting)
	c.mu.Unlock()

	go c.connect(ctx, gen)
}

// Close tears down the session explicitly: the live transport is closed,
// any pending reconnect timer is cancelled, and no reconnection is
// attempted. The client lands in Disconnected.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.gen++
	c.setStateLocked(model.Disconnected)
}

// State returns the current connection state.
func (c *Client) State() model.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Log returns the bounded log fed by this client. The log must only be
// read between client events; the client serializes all mutation.
func (c *Client) Log() *streamlog.Log {
	return c.log
}

// Entries returns a snapshot of the bounded log, oldest first, taken
// under the client's lock.
func (c *Client) Entries() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Entries()
}

// ClearLog empties the log without touching the connection.
func (c *Client) ClearLog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Clear()
}

// teardownLocked closes the live connection, cancels the session context,
// and stops any pending reconnect timer. Caller holds c.mu.
func (c *Client) teardownLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// newSessionLocked creates the context governing dials and reads for the
// current generation. Caller holds c.mu.
func (c *Client) newSessionLocked() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx
}

func (c *Client) setStateLocked(to model.ConnectionState) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	slog.Debug("connection state changed", "from", from, "to", to)
	c.renderer.StateChanged(from, to)
}

// connect dials one connection attempt for the given generation.
func (c *Client) connect(ctx context.Context, gen uint64) {
	conn, err := c.dialer.Dial(ctx)

	c.mu.Lock()
	if gen != c.gen {
		// Superseded by Open or Close while dialing.
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		slog.Warn("dial failed", "error", err)
		c.log.Append(model.Diagnostic(fmt.Sprintf("stream error: %v", err)))
		c.onTransportCloseLocked(ctx, gen)
		c.mu.Unlock()
		return
	}
	c.conn = conn
	c.attempts = 0
	c.setStateLocked(model.Connected)
	c.mu.Unlock()

	go c.readLoop(ctx, gen, conn)
}

// readLoop receives frames from one connection until it dies. Frames are
// appended in wire order; malformed frames are logged and dropped without
// touching state.
func (c *Client) readLoop(ctx context.Context, gen uint64, conn transport.Conn) {
	for {
		data, err := conn.Receive(ctx)
		if err != nil {
			c.mu.Lock()
			defer c.mu.Unlock()
			if gen != c.gen || ctx.Err() != nil {
				// Explicit Close or a superseding Open; the policy
				// must not run for user-initiated teardown.
				return
			}
			if !errors.Is(err, transport.ErrClosed) {
				slog.Warn("transport error", "error", err)
				c.log.Append(model.Diagnostic(fmt.Sprintf("stream error: %v", err)))
			}
			c.onTransportCloseLocked(ctx, gen)
			return
		}

		msg, derr := wire.Decode(data, time.Now())
		if derr != nil {
			slog.Warn("dropping malformed frame", "error", derr, "bytes", len(data))
			continue
		}

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		c.log.Append(msg)
		c.mu.Unlock()
	}
}

// onTransportCloseLocked applies the reconnection policy after a
// connection attempt ends. Caller holds c.mu and has already injected any
// per-attempt diagnostic.
func (c *Client) onTransportCloseLocked(ctx context.Context, gen uint64) {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.attempts < c.maxAttempts {
		c.attempts++
		slog.Info("scheduling reconnect", "attempt", c.attempts, "max", c.maxAttempts, "delay", c.delay)
		c.timer = c.sched.AfterFunc(c.delay, func() {
			c.mu.Lock()
			if gen != c.gen {
				// Close or a superseding Open won the race.
				c.mu.Unlock()
				return
			}
			c.timer = nil
			c.setStateLocked(model.Connecting)
			c.mu.Unlock()
			c.connect(ctx, gen)
		})
		c.setStateLocked(model.Reconnecting)
		return
	}

	c.setStateLocked(model.Exhausted)
	c.log.Append(model.Diagnostic(
		fmt.Sprintf("reconnect attempts exhausted after %d tries; reopen the stream to resume", c.attempts)))
	c.renderer.ReconnectsExhausted(c.attempts)
}
