package chatgpt

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// messageHashPrefixLen is how many leading characters of the text take
// part in the derived message identity.
const messageHashPrefixLen = 32

// ConversationID returns the export-supplied identifier, or a
// content-derived hash of the title when the export has none. The hash
// is deterministic so repeated runs over the same export agree.
//
// Known limitation: two untitled (or identically titled) conversations
// without source identifiers collide and merge into one record.
func ConversationID(c *Conversation) string {
	if c.ID != "" {
		return c.ID
	}
	return sha1Hex(c.Title)
}

// MessageID returns the export-supplied identifier, or a deterministic
// hash of (conversation id, timestamp, role, text prefix) when the
// export has none.
func MessageID(conversationID string, m *Message) string {
	if m.ID != "" {
		return m.ID
	}
	ts := "none"
	if unix := m.CreateTime.Unix(); unix != nil {
		ts = strconv.FormatFloat(*unix, 'f', -1, 64)
	}
	prefix := ExtractText(m)
	if runes := []rune(prefix); len(runes) > messageHashPrefixLen {
		prefix = string(runes[:messageHashPrefixLen])
	}
	return sha1Hex(fmt.Sprintf("%s:%s:%s:%s", conversationID, ts, m.Author.Role, prefix))
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
