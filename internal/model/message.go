package model

import "time"

// Message is one decoded unit of the thought stream — an immutable record
// with a timestamp, a presentation category, and free-form detail fields.
type Message struct {
	Timestamp  time.Time
	Category   string         // presentation tag (info, analysis, decision, ...)
	Label      string         // short symbolic marker (emoji key), decorative
	Text       string         // human-readable content; untrusted, escape before markup
	Attributes map[string]any // flat string→scalar detail fields
	Synthetic  bool           // true for client-generated diagnostics
}

// Diagnostic builds a client-generated error message. Diagnostics travel
// the same append path as real messages so failures stay in stream order.
func Diagnostic(text string) Message {
	return Message{
		Timestamp: time.Now(),
		Category:  CategoryError,
		Label:     DefaultLabel(CategoryError),
		Text:      text,
		Synthetic: true,
	}
}
