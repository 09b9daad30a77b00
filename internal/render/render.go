// Package render defines the notification surface toward rendering and
// analytics collaborators, plus markup-safe formatting helpers.
package render

import (
	"github.com/crimson-sun/wisp/internal/model"
)

// Renderer receives every accepted message and every lifecycle event.
// This is the sole contract surface toward the UI layer. Calls arrive in
// stream order and are never issued concurrently.
type Renderer interface {
	// MessageAppended fires once per message accepted into the log,
	// including client-synthesized diagnostics.
	MessageAppended(msg model.Message)

	// MessageEvicted fires once per entry removed to enforce capacity,
	// oldest first.
	MessageEvicted(msg model.Message)

	// LogCleared fires on a full reset of the log.
	LogCleared()

	// StateChanged fires on every connection state transition.
	StateChanged(from, to model.ConnectionState)

	// ReconnectsExhausted fires exactly once when the retry cap is hit.
	ReconnectsExhausted(attempts int)

	Close() error
}

// Nop discards all notifications. Useful as a default and in tests.
type Nop struct{}

func (Nop) MessageAppended(model.Message)           {}
func (Nop) MessageEvicted(model.Message)            {}
func (Nop) LogCleared()                             {}
func (Nop) StateChanged(_, _ model.ConnectionState) {}
func (Nop) ReconnectsExhausted(int)                 {}
func (Nop) Close() error                            { return nil }
