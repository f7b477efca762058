// Package importer ingests parsed ChatGPT exports into the store.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wesm/chatvault/internal/chatgpt"
	"github.com/wesm/chatvault/internal/store"
)

// Options controls an ingestion run.
type Options struct {
	// MaxMessages caps how many messages are kept per conversation,
	// in linearized order. 0 means no cap.
	MaxMessages int
	// TitleFilter keeps only conversations whose title contains the
	// string, case-insensitively. Applied before any write.
	TitleFilter string
}

// Result summarizes an ingestion run.
type Result struct {
	Conversations int // written successfully
	Messages      int // total message rows written
	Skipped       int // excluded by the title filter
	Failed        int // rolled back due to write errors
}

// IngestExport writes every conversation in the export. Each
// conversation is one transaction: its conversation row, all its
// message rows, and their index entries commit together or not at all.
// A failed conversation is logged and counted, and the run continues
// with the next one.
func IngestExport(ctx context.Context, st *store.Store, exp *chatgpt.Export, opts Options, log *slog.Logger) (*Result, error) {
	needle := strings.ToLower(opts.TitleFilter)
	res := &Result{}

	for i := range exp.Conversations {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		conv := &exp.Conversations[i]

		if needle != "" && !strings.Contains(strings.ToLower(conv.Title), needle) {
			res.Skipped++
			continue
		}

		written, err := ingestConversation(st, conv, opts)
		if err != nil {
			res.Failed++
			log.Warn("failed to ingest conversation",
				"conversation", chatgpt.ConversationID(conv),
				"title", conv.Title,
				"error", err,
			)
			continue
		}
		res.Conversations++
		res.Messages += written
		log.Debug("ingested conversation",
			"conversation", chatgpt.ConversationID(conv),
			"messages", written,
		)
	}

	return res, nil
}

// ingestConversation linearizes and writes one conversation. Returns
// the number of message rows written.
func ingestConversation(st *store.Store, conv *chatgpt.Conversation, opts Options) (int, error) {
	convID := chatgpt.ConversationID(conv)
	title := conv.Title
	if title == "" {
		title = "Conversation"
	}

	msgs := chatgpt.Linearize(conv.Mapping)
	if opts.MaxMessages > 0 && len(msgs) > opts.MaxMessages {
		msgs = msgs[:opts.MaxMessages]
	}

	var createdAt, updatedAt sql.NullFloat64
	if len(msgs) > 0 {
		createdAt = nullFloat(msgs[0].CreateTime.Unix())
		updatedAt = nullFloat(msgs[len(msgs)-1].CreateTime.Unix())
	}

	err := st.WithTx(func(tx *sql.Tx) error {
		if err := st.UpsertConversationTx(tx, &store.Conversation{
			ID:        convID,
			Title:     title,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}); err != nil {
			return fmt.Errorf("upsert conversation: %w", err)
		}

		for _, m := range msgs {
			rec := &store.MessageRecord{
				ID:             chatgpt.MessageID(convID, m),
				ConversationID: convID,
				Role:           m.Author.Role,
				CreatedAt:      nullFloat(m.CreateTime.Unix()),
				Text:           chatgpt.ExtractText(m),
			}
			if err := st.ReplaceMessageTx(tx, rec); err != nil {
				return fmt.Errorf("message %s: %w", rec.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(msgs), nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
