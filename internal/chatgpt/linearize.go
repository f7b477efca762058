package chatgpt

import "sort"

// Linearize flattens a conversation's node mapping into an ordered
// message sequence.
//
// Policy: chronological linearization, not tree-traversal linearization.
// The export's parent/child edges are discarded and messages sort by
// timestamp alone. Branching conversations (regenerated responses)
// therefore interleave by time rather than by causal path; a tree-walk
// linearizer would be a separate, deliberate behavior change.
//
// Messages that fail IsReal are dropped. The sort key is the message's
// create time, falling back to the ISO variant and then the update
// time; missing or unparseable timestamps sort as unix epoch start so
// they come first instead of failing the conversation. Equal keys fall
// back to node-key order, which makes a run deterministic without
// implying the order is meaningful.
func Linearize(mapping map[string]Node) []*Message {
	type entry struct {
		nodeKey string
		sortKey float64
		msg     *Message
	}

	entries := make([]entry, 0, len(mapping))
	for nodeKey, node := range mapping {
		if node.Message == nil || !IsReal(node.Message) {
			continue
		}
		entries = append(entries, entry{
			nodeKey: nodeKey,
			sortKey: sortKey(node.Message),
			msg:     node.Message,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].sortKey != entries[j].sortKey {
			return entries[i].sortKey < entries[j].sortKey
		}
		return entries[i].nodeKey < entries[j].nodeKey
	})

	msgs := make([]*Message, len(entries))
	for i, e := range entries {
		msgs[i] = e.msg
	}
	return msgs
}

// sortKey resolves the ordering timestamp for a message. Epoch start
// (0) is the hard default for anything absent or unparseable.
func sortKey(m *Message) float64 {
	if unix := m.CreateTime.Unix(); unix != nil {
		return *unix
	}
	if m.CreateTimeISO != "" {
		if parsed := parseISOTime(m.CreateTimeISO); parsed != nil {
			return float64(parsed.Unix())
		}
	}
	if unix := m.UpdateTime.Unix(); unix != nil {
		return *unix
	}
	return 0
}
