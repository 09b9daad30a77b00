package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/wisp/internal/model"
)

// EscapeText NFC-normalizes message text and escapes it for embedding in
// HTML or HTML-like markup. Message text is untrusted input and must pass
// through here before any markup context.
func EscapeText(s string) string {
	return html.EscapeString(norm.NFC.String(s))
}

// Line formats a message as a single plain-text line:
//
//	15:04:05 [analysis] magnifier scanning mentions (source=twitter)
//
// Attributes are sorted by key for stable output. showTimestamp is a
// rendering hint only.
func Line(msg model.Message, showTimestamp bool) string {
	var b strings.Builder
	if showTimestamp {
		b.WriteString(msg.Timestamp.Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", msg.Category)
	if msg.Label != "" {
		b.WriteByte(' ')
		b.WriteString(msg.Label)
	}
	b.WriteByte(' ')
	b.WriteString(msg.Text)
	if len(msg.Attributes) > 0 {
		keys := make([]string, 0, len(msg.Attributes))
		for k := range msg.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, msg.Attributes[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, " "))
	}
	return b.String()
}

// HTMLFragment formats a message as an HTML list item with all untrusted
// fields escaped. Category and label are presentation hints and are
// escaped too — they come off the wire.
func HTMLFragment(msg model.Message, showTimestamp bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<li class="wisp-entry wisp-%s">`, html.EscapeString(msg.Category))
	if showTimestamp {
		fmt.Fprintf(&b, `<time>%s</time> `, msg.Timestamp.Format("15:04:05"))
	}
	if msg.Label != "" {
		fmt.Fprintf(&b, `<span class="wisp-label">%s</span> `, EscapeText(msg.Label))
	}
	fmt.Fprintf(&b, `<span class="wisp-text">%s</span></li>`, EscapeText(msg.Text))
	return b.String()
}
