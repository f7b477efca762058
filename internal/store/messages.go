package store

import (
	"database/sql"
	"fmt"
)

// MessageRecord is one persisted message row.
type MessageRecord struct {
	ID             string
	ConversationID string
	Role           string
	CreatedAt      sql.NullFloat64
	Text           string
}

// ReplaceMessageTx writes a message row inside tx with full-replace
// semantics: every field reflects the current run, never a merge of old
// and new. The FTS entry is kept in step within the same transaction.
func (s *Store) ReplaceMessageTx(tx *sql.Tx, rec *MessageRecord) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO messages (id, conversation_id, author_role, created_at, text)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.ConversationID, rec.Role, rec.CreatedAt, rec.Text)
	if err != nil {
		return fmt.Errorf("replace message: %w", err)
	}
	if s.fts5Available {
		if err := s.upsertFTSTx(tx, rec); err != nil {
			return fmt.Errorf("upsert fts: %w", err)
		}
	}
	return nil
}

// upsertFTSTx maintains the incremental index entry for one message.
// FTS5 rows are addressed by an internal rowid, not by message_id, so a
// bare insert would accumulate one duplicate per re-ingestion. Deleting
// by message_id first makes the write idempotent.
func (s *Store) upsertFTSTx(tx *sql.Tx, rec *MessageRecord) error {
	if _, err := tx.Exec(`DELETE FROM messages_fts WHERE message_id = ?`, rec.ID); err != nil {
		return err
	}
	createdAt := 0.0
	if rec.CreatedAt.Valid {
		createdAt = rec.CreatedAt.Float64
	}
	_, err := tx.Exec(`
		INSERT INTO messages_fts (text, author_role, conversation_id, message_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Text, rec.Role, rec.ConversationID, rec.ID, createdAt)
	return err
}

// RebuildFTS drops every index row and repopulates the index from a
// full scan of the messages table. Unconditionally correct, O(total
// message count). Returns the number of rows indexed. No-op when FTS5
// is unavailable.
func (s *Store) RebuildFTS() (int64, error) {
	if !s.fts5Available {
		return 0, nil
	}

	var indexed int64
	err := s.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM messages_fts`); err != nil {
			return fmt.Errorf("clear fts: %w", err)
		}
		result, err := tx.Exec(`
			INSERT INTO messages_fts (text, author_role, conversation_id, message_id, created_at)
			SELECT COALESCE(text, ''), COALESCE(author_role, ''),
			       conversation_id, id, COALESCE(created_at, 0)
			FROM messages
		`)
		if err != nil {
			return fmt.Errorf("repopulate fts: %w", err)
		}
		indexed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return indexed, nil
}

// GetMessage returns a message by id, or nil if absent.
func (s *Store) GetMessage(id string) (*MessageRecord, error) {
	var rec MessageRecord
	err := s.db.QueryRow(`
		SELECT id, conversation_id, author_role, created_at, text
		FROM messages WHERE id = ?
	`, id).Scan(&rec.ID, &rec.ConversationID, &rec.Role, &rec.CreatedAt, &rec.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListMessages returns a conversation's messages in ascending creation
// time. NULL timestamps sort first, matching the linearizer's
// epoch-start default.
func (s *Store) ListMessages(conversationID string) ([]*MessageRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, conversation_id, author_role, created_at, text
		FROM messages
		WHERE conversation_id = ?
		ORDER BY COALESCE(created_at, 0) ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*MessageRecord
	for rows.Next() {
		var rec MessageRecord
		if err := rows.Scan(&rec.ID, &rec.ConversationID, &rec.Role, &rec.CreatedAt, &rec.Text); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}
