package chatgpt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadFile loads and decodes a conversations.json export.
func ReadFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes an export document from r. Two top-level shapes are
// accepted: a bare list of conversations, or an object wrapping the
// list under a "conversations" key. Anything else is fatal so no
// partial ingestion happens from a document we misread.
func Decode(r io.Reader) (*Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	switch firstToken(data) {
	case '[':
		var conversations []Conversation
		if err := json.Unmarshal(data, &conversations); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		return &Export{Conversations: conversations}, nil
	case '{':
		var wrapper struct {
			Conversations []Conversation `json:"conversations"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		if wrapper.Conversations == nil {
			return nil, fmt.Errorf("unrecognized export format: object has no \"conversations\" key")
		}
		return &Export{Conversations: wrapper.Conversations}, nil
	default:
		return nil, fmt.Errorf("unrecognized export format: expected a list or a wrapping object")
	}
}

func firstToken(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
