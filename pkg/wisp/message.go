package wisp

import (
	"time"

	"github.com/crimson-sun/wisp/internal/model"
)

// State describes the connection lifecycle.
type State int

const (
	// Disconnected means no session is active.
	Disconnected State = iota
	// Connecting means a connection attempt is in flight.
	Connecting
	// Connected means the stream is live.
	Connected
	// Reconnecting means a retry is scheduled after a failure.
	Reconnecting
	// Exhausted means the retry budget is spent; only Open resumes.
	Exhausted
)

func (s State) String() string {
	return model.ConnectionState(s).String()
}

// Message is one entry of the thought stream.
type Message struct {
	// Timestamp is the sender's timestamp, or the receipt time when the
	// frame carried none.
	Timestamp time.Time

	// Category is the message kind: info, analysis, decision, action,
	// success, or error.
	Category string

	// Label is the short display prefix for the message.
	Label string

	// Text is the message body.
	Text string

	// Attributes holds the frame's flat key/value detail pairs.
	Attributes map[string]any

	// Synthetic marks messages the client injected itself (connection
	// diagnostics) rather than received from the stream.
	Synthetic bool
}

func fromModel(m model.Message) Message {
	return Message{
		Timestamp:  m.Timestamp,
		Category:   m.Category,
		Label:      m.Label,
		Text:       m.Text,
		Attributes: m.Attributes,
		Synthetic:  m.Synthetic,
	}
}
