// Package wire decodes inbound transport frames into model.Message records.
//
// Each frame is UTF-8 text holding one JSON object with fields timestamp
// (ISO-8601), type, emoji/label, content, and an optional flat data map.
// Anything else is a decode failure, recovered by the caller.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crimson-sun/wisp/internal/model"
)

// ErrMalformedFrame is wrapped by Decode for frames that fail structural
// validation. Callers drop these without touching connection state.
var ErrMalformedFrame = errors.New("malformed frame")

// frame is the wire shape. Two label spellings exist in the field; "emoji"
// wins when both are present.
type frame struct {
	Timestamp string         `json:"timestamp"`
	Type      string         `json:"type"`
	Emoji     string         `json:"emoji"`
	Label     string         `json:"label"`
	Content   string         `json:"content"`
	Data      map[string]any `json:"data"`
}

// Decode parses a single frame into a Message. receivedAt supplies the
// timestamp when the frame carries none (or an unparsable one). Values in
// data that are not scalars are dropped, never flattened.
func Decode(data []byte, receivedAt time.Time) (model.Message, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return model.Message{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if f.Type == "" && f.Content == "" {
		return model.Message{}, fmt.Errorf("%w: no type or content", ErrMalformedFrame)
	}

	ts := receivedAt
	if f.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, f.Timestamp); err == nil {
			ts = parsed
		}
	}

	category := f.Type
	if category == "" {
		category = model.CategoryInfo
	}

	label := f.Emoji
	if label == "" {
		label = f.Label
	}
	if label == "" {
		label = model.DefaultLabel(category)
	}

	return model.Message{
		Timestamp:  ts,
		Category:   category,
		Label:      label,
		Text:       f.Content,
		Attributes: scalarAttributes(f.Data),
	}, nil
}

// scalarAttributes copies only scalar values from the wire data map.
func scalarAttributes(data map[string]any) map[string]any {
	var attrs map[string]any
	for k, v := range data {
		switch v.(type) {
		case string, bool, float64, nil:
		default:
			// Nested structures are ambiguous to serialize — drop them.
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any, len(data))
		}
		attrs[k] = v
	}
	return attrs
}
