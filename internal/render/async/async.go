// Package async decouples a slow renderer from the stream's event loop
// via a buffered channel, preserving notification order.
package async

import (
	"log/slog"
	"sync"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithDropOnFull drops notifications instead of blocking when the buffer
// is full. Use for sinks where lossiness is acceptable (e.g. a webhook);
// never use it for the display surface — evictions must not be lost.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// event carries one notification through the channel. Exactly one field
// group is populated per kind.
type event struct {
	kind     kind
	msg      model.Message
	from, to model.ConnectionState
	attempts int
}

type kind int

const (
	kindAppended kind = iota
	kindEvicted
	kindCleared
	kindState
	kindExhausted
)

// Async wraps a renderer so notifications are delivered on a background
// goroutine, in the order they were produced.
type Async struct {
	inner      render.Renderer
	ch         chan event
	done       chan struct{}
	bufSize    int
	dropOnFull bool
	closeOnce  sync.Once
}

// New wraps a renderer in an async delivery channel. The drain goroutine
// starts immediately.
func New(inner render.Renderer, opts ...Option) *Async {
	a := &Async{inner: inner, bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan event, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

func (a *Async) MessageAppended(msg model.Message) {
	a.send(event{kind: kindAppended, msg: msg})
}

func (a *Async) MessageEvicted(msg model.Message) {
	a.send(event{kind: kindEvicted, msg: msg})
}

func (a *Async) LogCleared() {
	a.send(event{kind: kindCleared})
}

func (a *Async) StateChanged(from, to model.ConnectionState) {
	a.send(event{kind: kindState, from: from, to: to})
}

func (a *Async) ReconnectsExhausted(attempts int) {
	a.send(event{kind: kindExhausted, attempts: attempts})
}

// send enqueues an event. By default blocks when the buffer is full
// (backpressure); with WithDropOnFull the event is lost instead.
func (a *Async) send(ev event) {
	if a.dropOnFull {
		select {
		case a.ch <- ev:
		default:
			slog.Warn("async renderer buffer full, dropping notification")
		}
		return
	}
	a.ch <- ev
}

// Close stops intake, waits for the drain goroutine to finish (with a
// timeout), then closes the inner renderer.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			slog.Warn("async renderer drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain delivers queued events to the inner renderer.
func (a *Async) drain() {
	defer close(a.done)
	for ev := range a.ch {
		switch ev.kind {
		case kindAppended:
			a.inner.MessageAppended(ev.msg)
		case kindEvicted:
			a.inner.MessageEvicted(ev.msg)
		case kindCleared:
			a.inner.LogCleared()
		case kindState:
			a.inner.StateChanged(ev.from, ev.to)
		case kindExhausted:
			a.inner.ReconnectsExhausted(ev.attempts)
		}
	}
}
