package wisp

import "time"

type options struct {
	maxEntries        int
	reconnectAttempts int
	reconnectDelay    time.Duration
	observer          Observer
}

// Option configures a Stream.
type Option func(*options)

// WithMaxEntries bounds the in-memory message log. Once full, the oldest
// entries are evicted first. Default: 50.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithReconnectAttempts caps automatic reconnects after a transport
// failure. Zero disables automatic reconnection. Default: 5.
func WithReconnectAttempts(n int) Option {
	return func(o *options) {
		o.reconnectAttempts = n
	}
}

// WithReconnectDelay sets the fixed wait between a failure and the next
// connection attempt. Default: 3s.
func WithReconnectDelay(d time.Duration) Option {
	return func(o *options) {
		o.reconnectDelay = d
	}
}

// WithObserver registers a callback surface for log and lifecycle events.
// Calls arrive in stream order and are never issued concurrently.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func defaultOptions() options {
	return options{
		maxEntries:        50,
		reconnectAttempts: 5,
		reconnectDelay:    3 * time.Second,
	}
}
