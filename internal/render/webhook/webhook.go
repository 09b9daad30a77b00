// Package webhook forwards accepted messages to an HTTP endpoint for
// analytics collaborators attached to the notification hook.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

const (
	defaultBatchSize     = 50
	defaultFlushInterval = 5 * time.Second
	defaultTimeout       = 10 * time.Second
	maxRetries           = 3
)

// Option configures a webhook Renderer.
type Option func(*Renderer)

// WithHeaders sets custom HTTP headers sent with every POST.
func WithHeaders(h map[string]string) Option {
	return func(r *Renderer) { r.headers = h }
}

// WithBatchSize sets the number of messages accumulated before a flush.
// Default: 50.
func WithBatchSize(n int) Option {
	return func(r *Renderer) { r.batchSize = n }
}

// WithFlushInterval sets the maximum time between flushes. Default: 5s.
func WithFlushInterval(d time.Duration) Option {
	return func(r *Renderer) { r.flushInterval = d }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) { r.client.Timeout = d }
}

// WithOnError sets a callback invoked when a timer-triggered flush fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(r *Renderer) { r.errFunc = f }
}

// Renderer POSTs batched message records to an HTTP endpoint as a JSON
// array. Records accumulate in an internal buffer and are flushed when
// batchSize is reached or flushInterval elapses. Retries on 5xx with
// exponential backoff. Evictions and state changes are not forwarded.
type Renderer struct {
	render.Nop
	client        *http.Client
	url           string
	headers       map[string]string
	batchSize     int
	flushInterval time.Duration
	errFunc       func(error)
	mu            sync.Mutex
	pending       []render.Record
	timer         *time.Timer
}

// New creates a webhook renderer targeting the given URL.
func New(url string, opts ...Option) *Renderer {
	r := &Renderer{
		client:        &http.Client{Timeout: defaultTimeout},
		url:           url,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		errFunc:       func(err error) { slog.Warn("webhook flush error", "error", err) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MessageAppended adds the message to the batch. When batchSize is
// reached, the batch flushes immediately. A timer is started on the first
// message so the batch flushes even if batchSize is never reached.
func (r *Renderer) MessageAppended(msg model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, render.NewRecord(msg))

	if len(r.pending) >= r.batchSize {
		if err := r.flushLocked(); err != nil {
			r.errFunc(err)
		}
		return
	}

	// Start timer on first message in a new batch.
	if len(r.pending) == 1 {
		r.timer = time.AfterFunc(r.flushInterval, func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if err := r.flushLocked(); err != nil {
				r.errFunc(err)
			}
		})
	}
}

// Close flushes any remaining records and stops the timer.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if len(r.pending) > 0 {
		return r.flushLocked()
	}
	return nil
}

// flushLocked sends the pending batch via HTTP POST. Caller must hold r.mu.
func (r *Renderer) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	batch := r.pending
	r.pending = nil

	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("webhook: marshal: %w", err)
	}

	return r.postWithRetry(body)
}

// postWithRetry sends the body via HTTP POST with retry on 5xx.
func (r *Renderer) postWithRetry(body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, r.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range r.headers {
			req.Header.Set(k, v)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		lastErr = fmt.Errorf("webhook: HTTP %d", resp.StatusCode)

		// Only retry on 5xx server errors.
		if resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}
