package chatgpt

import "strings"

// ExtractText returns the best-effort plain-text body of a message, or
// "" when nothing is recoverable. Resolution order: content parts joined
// with newline, then content text, then the node-level text field.
// Absence is not an error; downstream filtering drops empty bodies.
func ExtractText(m *Message) string {
	if m == nil {
		return ""
	}
	switch m.Content.Kind {
	case ContentParts:
		return strings.Join(m.Content.Parts, "\n")
	case ContentText:
		return m.Content.Text
	}
	return m.Text
}

// IsReal reports whether a message should be persisted: a user or
// assistant turn whose extracted text is non-empty after trimming.
func IsReal(m *Message) bool {
	if m == nil {
		return false
	}
	role := m.Author.Role
	if role != RoleUser && role != RoleAssistant {
		return false
	}
	return strings.TrimSpace(ExtractText(m)) != ""
}
