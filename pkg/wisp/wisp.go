package wisp

import (
	"fmt"

	"github.com/crimson-sun/wisp/internal/client"
	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
	"github.com/crimson-sun/wisp/internal/streamlog"
	"github.com/crimson-sun/wisp/internal/transport"

	// Transport drivers register themselves with the endpoint resolver.
	_ "github.com/crimson-sun/wisp/internal/transport/sse"
	_ "github.com/crimson-sun/wisp/internal/transport/websocket"
)

// Observer receives every accepted message and every lifecycle event of a
// Stream. All methods are optional to act on; implementations must not
// block, as they run on the stream's event path.
type Observer interface {
	// MessageAppended fires once per message accepted into the log,
	// including client-injected diagnostics.
	MessageAppended(msg Message)

	// MessageEvicted fires once per entry dropped to enforce the entry
	// cap, oldest first.
	MessageEvicted(msg Message)

	// LogCleared fires on a full reset of the log.
	LogCleared()

	// StateChanged fires on every connection state transition.
	StateChanged(from, to State)

	// ReconnectsExhausted fires exactly once when the retry cap is hit.
	ReconnectsExhausted(attempts int)
}

// Stream is a client for one thought-stream endpoint. It holds a bounded
// log of recent messages and reconnects after transport failures up to the
// configured attempt cap. Safe for concurrent use.
type Stream struct {
	client *client.Client
	log    *streamlog.Log
}

// New resolves the endpoint and creates a Stream in the disconnected
// state. No connection is opened until Open is called. Construction fails
// fast on an unsupported scheme or invalid option values.
func New(endpoint string, opts ...Option) (*Stream, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dialer, err := transport.Resolve(endpoint)
	if err != nil {
		return nil, fmt.Errorf("wisp: %w", err)
	}

	var r render.Renderer = render.Nop{}
	if o.observer != nil {
		r = observerAdapter{o.observer}
	}

	log, err := streamlog.New(o.maxEntries, r)
	if err != nil {
		return nil, fmt.Errorf("wisp: %w", err)
	}

	c, err := client.New(client.Params{
		Dialer:            dialer,
		Log:               log,
		Renderer:          r,
		ReconnectAttempts: o.reconnectAttempts,
		ReconnectDelay:    o.reconnectDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("wisp: %w", err)
	}
	return &Stream{client: c, log: log}, nil
}

// Open starts a new connection session, superseding any prior one. The
// retry budget resets on a successful handshake. Safe to call from any
// state, including Exhausted.
func (s *Stream) Open() {
	s.client.Open()
}

// Close tears the session down: the connection is closed, any pending
// reconnect is cancelled, and no reconnection is attempted.
func (s *Stream) Close() {
	s.client.Close()
}

// State returns the current connection state.
func (s *Stream) State() State {
	return State(s.client.State())
}

// Messages returns a snapshot of the bounded log, oldest first.
func (s *Stream) Messages() []Message {
	entries := s.client.Entries()
	out := make([]Message, len(entries))
	for i, m := range entries {
		out[i] = fromModel(m)
	}
	return out
}

// Clear empties the message log without touching the connection.
func (s *Stream) Clear() {
	s.client.ClearLog()
}

// observerAdapter bridges the public Observer to the internal renderer
// contract.
type observerAdapter struct {
	obs Observer
}

func (a observerAdapter) MessageAppended(msg model.Message) { a.obs.MessageAppended(fromModel(msg)) }
func (a observerAdapter) MessageEvicted(msg model.Message)  { a.obs.MessageEvicted(fromModel(msg)) }
func (a observerAdapter) LogCleared()                       { a.obs.LogCleared() }
func (a observerAdapter) StateChanged(from, to model.ConnectionState) {
	a.obs.StateChanged(State(from), State(to))
}
func (a observerAdapter) ReconnectsExhausted(attempts int) { a.obs.ReconnectsExhausted(attempts) }
func (a observerAdapter) Close() error                     { return nil }
