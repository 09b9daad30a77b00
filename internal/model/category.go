package model

// Canonical categories. The set is open-ended in practice — unknown wire
// tags pass through untouched — these constants only anchor defaults for
// labels and severities.
const (
	CategoryInfo     = "info"
	CategoryAnalysis = "analysis"
	CategoryDecision = "decision"
	CategoryAction   = "action"
	CategorySuccess  = "success"
	CategoryError    = "error"
)

// categoryDefaults maps canonical categories to a default label (emoji key)
// and a normalized severity used by renderers.
var categoryDefaults = map[string]struct {
	label    string
	severity string
}{
	CategoryInfo:     {"bulb", "info"},
	CategoryAnalysis: {"magnifier", "info"},
	CategoryDecision: {"scales", "info"},
	CategoryAction:   {"gear", "info"},
	CategorySuccess:  {"check", "info"},
	CategoryError:    {"cross", "error"},
}

// DefaultLabel returns the default symbolic marker for a category, or ""
// for categories outside the canonical set.
func DefaultLabel(category string) string {
	return categoryDefaults[category].label
}

// Severity returns the normalized severity for a category. Unknown
// categories report "info".
func Severity(category string) string {
	if d, ok := categoryDefaults[category]; ok {
		return d.severity
	}
	return "info"
}
