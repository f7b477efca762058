package chatgpt

import (
	"encoding/json"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		rawJSON string
		want    string
	}{
		{
			name:    "content parts joined with newline",
			rawJSON: `{"content": {"parts": ["hello", "world"]}}`,
			want:    "hello\nworld",
		},
		{
			name:    "non-string parts become empty",
			rawJSON: `{"content": {"parts": ["hello", {"asset_pointer": "file://x"}, "bye"]}}`,
			want:    "hello\n\nbye",
		},
		{
			name:    "content text field",
			rawJSON: `{"content": {"text": "plain body"}}`,
			want:    "plain body",
		},
		{
			name:    "parts wins over text",
			rawJSON: `{"content": {"parts": ["a"], "text": "b"}}`,
			want:    "a",
		},
		{
			name:    "node-level text fallback",
			rawJSON: `{"text": "top level", "content": null}`,
			want:    "top level",
		},
		{
			name:    "unrecognized content shape falls back to node text",
			rawJSON: `{"text": "fallback", "content": "just a string"}`,
			want:    "fallback",
		},
		{
			name:    "nothing recoverable",
			rawJSON: `{"content": {"content_type": "code"}}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Message
			if err := json.Unmarshal([]byte(tt.rawJSON), &m); err != nil {
				t.Fatalf("unmarshal message: %v", err)
			}
			if got := ExtractText(&m); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextNil(t *testing.T) {
	if got := ExtractText(nil); got != "" {
		t.Errorf("ExtractText(nil) = %q, want empty", got)
	}
}

func TestIsReal(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want bool
	}{
		{
			name: "user with text",
			msg:  &Message{Author: Author{Role: RoleUser}, Content: Content{Kind: ContentText, Text: "hi"}},
			want: true,
		},
		{
			name: "assistant with text",
			msg:  &Message{Author: Author{Role: RoleAssistant}, Content: Content{Kind: ContentText, Text: "hello"}},
			want: true,
		},
		{
			name: "system role filtered",
			msg:  &Message{Author: Author{Role: "system"}, Content: Content{Kind: ContentText, Text: "hi"}},
			want: false,
		},
		{
			name: "missing role filtered",
			msg:  &Message{Content: Content{Kind: ContentText, Text: "hi"}},
			want: false,
		},
		{
			name: "whitespace-only text filtered",
			msg:  &Message{Author: Author{Role: RoleUser}, Content: Content{Kind: ContentText, Text: "  \n\t "}},
			want: false,
		},
		{
			name: "nil message",
			msg:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReal(tt.msg); got != tt.want {
				t.Errorf("IsReal() = %v, want %v", got, tt.want)
			}
		})
	}
}
