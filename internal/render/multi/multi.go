// Package multi fans notifications out to several renderers, so a TUI, a
// transcript file, and an analytics webhook can all observe one stream.
package multi

import (
	"errors"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

// Multi delivers every notification to every wrapped renderer, in the
// order given at construction.
type Multi struct {
	renderers []render.Renderer
}

// New creates a Multi fanning out to the given renderers.
func New(renderers ...render.Renderer) *Multi {
	return &Multi{renderers: renderers}
}

func (m *Multi) MessageAppended(msg model.Message) {
	for _, r := range m.renderers {
		r.MessageAppended(msg)
	}
}

func (m *Multi) MessageEvicted(msg model.Message) {
	for _, r := range m.renderers {
		r.MessageEvicted(msg)
	}
}

func (m *Multi) LogCleared() {
	for _, r := range m.renderers {
		r.LogCleared()
	}
}

func (m *Multi) StateChanged(from, to model.ConnectionState) {
	for _, r := range m.renderers {
		r.StateChanged(from, to)
	}
}

func (m *Multi) ReconnectsExhausted(attempts int) {
	for _, r := range m.renderers {
		r.ReconnectsExhausted(attempts)
	}
}

// Close closes every wrapped renderer, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, r := range m.renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
