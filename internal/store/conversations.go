package store

import "database/sql"

// Conversation is one persisted conversation row.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt sql.NullFloat64
	UpdatedAt sql.NullFloat64
}

// UpsertConversationTx inserts or updates a conversation row inside tx.
// Title and updated_at always take the new run's values. created_at
// keeps the earliest known value once one is stored, so a later run
// (for example one truncated by a message limit) never regresses it.
func (s *Store) UpsertConversationTx(tx *sql.Tx, conv *Conversation) error {
	_, err := tx.Exec(`
		INSERT INTO conversations (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			created_at = COALESCE(conversations.created_at, excluded.created_at),
			updated_at = excluded.updated_at
	`, conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt)
	return err
}

// GetConversation returns a conversation by id, or nil if absent.
func (s *Store) GetConversation(id string) (*Conversation, error) {
	var conv Conversation
	err := s.db.QueryRow(`
		SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?
	`, id).Scan(&conv.ID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
