package render

import (
	"time"

	"github.com/crimson-sun/wisp/internal/model"
)

// Record is the JSON shape shared by the NDJSON renderers (stdout, file)
// and the webhook forwarder.
type Record struct {
	Timestamp  time.Time      `json:"timestamp"`
	Category   string         `json:"category"`
	Severity   string         `json:"severity"`
	Label      string         `json:"label,omitempty"`
	Text       string         `json:"text"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Synthetic  bool           `json:"synthetic,omitempty"`
}

// NewRecord converts a message to its serialized form.
func NewRecord(msg model.Message) Record {
	return Record{
		Timestamp:  msg.Timestamp,
		Category:   msg.Category,
		Severity:   model.Severity(msg.Category),
		Label:      msg.Label,
		Text:       msg.Text,
		Attributes: msg.Attributes,
		Synthetic:  msg.Synthetic,
	}
}
