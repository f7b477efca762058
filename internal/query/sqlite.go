// Package query runs search queries against the chatvault archive.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wesm/chatvault/internal/search"
)

// DefaultLimit caps result sets when the caller doesn't specify one.
const DefaultLimit = 50

// Result is one search hit with display fields resolved.
type Result struct {
	MessageID      string
	ConversationID string
	Title          string
	Role           string
	CreatedAt      *float64 // unix seconds; nil when the source had none
	Text           string
}

// Engine executes searches against an archive.
type Engine interface {
	Search(ctx context.Context, q *search.Query, limit int) ([]Result, error)
}

// SQLiteEngine implements Engine over the SQLite archive, matching
// against the FTS5 index and joining back to messages/conversations
// for filtering and display fields.
type SQLiteEngine struct {
	db *sql.DB
}

// NewSQLiteEngine creates a query engine over db.
func NewSQLiteEngine(db *sql.DB) *SQLiteEngine {
	return &SQLiteEngine{db: db}
}

// Search returns matching messages ordered by creation time ascending,
// capped at limit. Time bounds are inclusive and combine with the text
// predicate by AND. FTS5 syntax errors from a malformed match
// expression surface verbatim.
func (e *SQLiteEngine) Search(ctx context.Context, q *search.Query, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var conditions []string
	var args []interface{}
	from := `FROM messages m JOIN conversations c ON c.id = m.conversation_id`

	if q.Match != "" {
		from = `FROM messages_fts f
		JOIN messages m ON m.id = f.message_id
		JOIN conversations c ON c.id = m.conversation_id`
		conditions = append(conditions, "messages_fts MATCH ?")
		args = append(args, q.Match)
	}
	if q.Since != nil {
		conditions = append(conditions, "m.created_at >= ?")
		args = append(args, float64(q.Since.Unix()))
	}
	if q.Until != nil {
		conditions = append(conditions, "m.created_at <= ?")
		args = append(args, float64(q.Until.Unix()))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.conversation_id, COALESCE(c.title, ''),
		       COALESCE(m.author_role, ''), m.created_at, COALESCE(m.text, '')
		%s
		%s
		ORDER BY m.created_at ASC
		LIMIT ?
	`, from, whereClause)
	args = append(args, limit)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt sql.NullFloat64
		if err := rows.Scan(&r.MessageID, &r.ConversationID, &r.Title, &r.Role, &createdAt, &r.Text); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if createdAt.Valid {
			v := createdAt.Float64
			r.CreatedAt = &v
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
