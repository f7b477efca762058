// Package search translates user-facing search queries into the FTS5
// syntax the store understands.
package search

import (
	"fmt"
	"strings"
	"time"
)

// Query is a translated search request, ready for the query engine.
type Query struct {
	Match string     // FTS5 MATCH expression; empty = no text predicate
	Since *time.Time // inclusive lower bound (UTC midnight)
	Until *time.Time // inclusive upper bound (UTC midnight)
}

// Translate rewrites the role: shorthand into the index's
// field-qualified column name. Everything else passes through verbatim:
// this layer does no syntax validation, so FTS5 operators (AND, OR,
// NEAR, quoted phrases) keep working and malformed syntax surfaces as
// the engine's own error.
func Translate(query string) string {
	return strings.ReplaceAll(query, "role:", "author_role:")
}

// dateFormats accepted for --since/--until bounds. Calendar dates only,
// no time of day.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
}

// ParseDate parses an inclusive calendar-date bound as UTC midnight.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
}
