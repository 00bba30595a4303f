// Package notify renders overdue-alert messages from configurable templates
// and dispatches them to the notification log, one record per recipient role.
package notify

import "strings"

// Render substitutes every {{token}} occurrence in tmpl with the matching
// field value. Matching is literal and case-sensitive; tokens without a field
// stay in the output verbatim. No escaping, truncation or validation happens
// here: callers own the field map.
func Render(tmpl string, fields map[string]string) string {
	out := tmpl
	for token, value := range fields {
		out = strings.ReplaceAll(out, "{{"+token+"}}", value)
	}
	return out
}

// Resolve picks the configured template unless it is blank, in which case the
// built-in default for that (trigger, role) pair is used.
func Resolve(configured, fallback string) string {
	if strings.TrimSpace(configured) == "" {
		return fallback
	}
	return configured
}
