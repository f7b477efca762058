// Package chatgpt parses ChatGPT conversation exports (conversations.json).
//
// The export encodes each conversation as a mapping of graph nodes with
// parent/child links. This package deliberately ignores the links: see
// Linearize for the chronological linearization policy.
package chatgpt

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Export is a parsed conversations.json document.
type Export struct {
	Conversations []Conversation
}

// Conversation is one conversation record from the export. ID and Title
// are both optional in the source; ConversationID derives a stable
// identifier when ID is missing.
type Conversation struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Mapping map[string]Node `json:"mapping"`
}

// Node is one entry in a conversation's node mapping. The export also
// carries parent/children edges per node; they are not modeled because
// ordering is chronological, not structural.
type Node struct {
	Message *Message `json:"message"`
}

// Message is the message payload inside a node.
type Message struct {
	ID            string    `json:"id"`
	Author        Author    `json:"author"`
	CreateTime    TimeValue `json:"create_time"`
	CreateTimeISO string    `json:"create_time_iso"`
	UpdateTime    TimeValue `json:"update_time"`
	Content       Content   `json:"content"`
	Text          string    `json:"text"`
}

// Author identifies who wrote a message.
type Author struct {
	Role string `json:"role"`
}

// Roles that count as real conversation turns. Everything else
// (system, tool, unknown) is filtered out during linearization.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentKind tags the content encodings the export is known to use.
type ContentKind int

const (
	// ContentUnknown covers absent content and shapes this package does
	// not recognize. Extraction degrades to the node-level text field.
	ContentUnknown ContentKind = iota
	// ContentParts is an object with a "parts" list of text fragments.
	ContentParts
	// ContentText is an object with a single "text" field.
	ContentText
)

// Content is a message body in one of the export's encodings.
type Content struct {
	Kind  ContentKind
	Parts []string // ContentParts; non-string fragments become ""
	Text  string   // ContentText
}

// UnmarshalJSON decodes the content union. Unrecognized shapes never
// fail: they decode as ContentUnknown and extraction returns "".
func (c *Content) UnmarshalJSON(data []byte) error {
	var probe struct {
		Parts []json.RawMessage `json:"parts"`
		Text  *string           `json:"text"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		*c = Content{Kind: ContentUnknown}
		return nil
	}
	switch {
	case probe.Parts != nil:
		parts := make([]string, len(probe.Parts))
		for i, raw := range probe.Parts {
			// Fragments may be objects (images, tool results); only
			// plain strings contribute text.
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				parts[i] = s
			}
		}
		*c = Content{Kind: ContentParts, Parts: parts}
	case probe.Text != nil:
		*c = Content{Kind: ContentText, Text: *probe.Text}
	default:
		*c = Content{Kind: ContentUnknown}
	}
	return nil
}

// TimeValue is a timestamp the export encodes either as unix seconds or
// as an ISO-8601-ish string. The zero value means absent.
type TimeValue struct {
	seconds float64
	iso     string
	kind    timeKind
}

type timeKind int

const (
	timeAbsent timeKind = iota
	timeNumeric
	timeString
)

// NumericTime builds a TimeValue from unix seconds. Used by tests and
// by callers that synthesize messages.
func NumericTime(seconds float64) TimeValue {
	return TimeValue{seconds: seconds, kind: timeNumeric}
}

// StringTime builds a TimeValue from an ISO-8601 string.
func StringTime(iso string) TimeValue {
	return TimeValue{iso: iso, kind: timeString}
}

// IsZero reports whether no timestamp was present in the source.
func (t TimeValue) IsZero() bool {
	return t.kind == timeAbsent
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null. Other
// shapes decode as absent rather than failing the surrounding message.
func (t *TimeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*t = TimeValue{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = TimeValue{}
			return nil
		}
		*t = StringTime(s)
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		*t = NumericTime(f)
		return nil
	}
	*t = TimeValue{}
	return nil
}

// Unix converts to unix seconds. Returns nil when the timestamp is
// absent or the string form cannot be parsed.
func (t TimeValue) Unix() *float64 {
	switch t.kind {
	case timeNumeric:
		s := t.seconds
		return &s
	case timeString:
		if parsed := parseISOTime(t.iso); parsed != nil {
			s := float64(parsed.UnixNano()) / float64(time.Second)
			return &s
		}
	}
	return nil
}

// isoFormats are the timestamp layouts seen in exports, most specific
// first. Layouts without an offset are interpreted as UTC.
var isoFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseISOTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, format := range isoFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}
