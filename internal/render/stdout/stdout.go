// Package stdout renders the stream as plain text lines or NDJSON on a
// writer, normally os.Stdout.
package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWriter redirects output away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Renderer) { r.w = w }
}

// WithNDJSON switches from human-readable lines to one JSON record per
// line.
func WithNDJSON() Option {
	return func(r *Renderer) { r.ndjson = true }
}

// WithTimestamps includes message timestamps in line output.
func WithTimestamps(show bool) Option {
	return func(r *Renderer) { r.showTimestamp = show }
}

// Renderer writes accepted messages and lifecycle transitions as they
// happen. Evictions are ignored — a terminal scrollback has no elements
// to remove.
type Renderer struct {
	render.Nop
	w             io.Writer
	ndjson        bool
	showTimestamp bool
}

// New creates a stdout renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{w: os.Stdout, showTimestamp: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTimestamps flips timestamp display at runtime. Display state only;
// call between notifications, as with all renderer access.
func (r *Renderer) SetTimestamps(show bool) {
	r.showTimestamp = show
}

func (r *Renderer) MessageAppended(msg model.Message) {
	if r.ndjson {
		data, err := json.Marshal(render.NewRecord(msg))
		if err != nil {
			return
		}
		fmt.Fprintf(r.w, "%s\n", data)
		return
	}
	fmt.Fprintln(r.w, render.Line(msg, r.showTimestamp))
}

func (r *Renderer) StateChanged(from, to model.ConnectionState) {
	if r.ndjson {
		fmt.Fprintf(r.w, `{"event":"state_changed","from":%q,"to":%q}`+"\n", from, to)
		return
	}
	fmt.Fprintf(r.w, "-- %s --\n", to)
}

func (r *Renderer) ReconnectsExhausted(attempts int) {
	if r.ndjson {
		fmt.Fprintf(r.w, `{"event":"exhausted","attempts":%d}`+"\n", attempts)
	}
}
