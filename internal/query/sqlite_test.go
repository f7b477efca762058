package query

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wesm/chatvault/internal/search"
	"github.com/wesm/chatvault/internal/store"
	"github.com/wesm/chatvault/internal/testutil/dbtest"
)

// seedRefundArchive loads the standard fixture: one conversation with
// a user and an assistant message, plus an unrelated conversation.
func seedRefundArchive(t *testing.T) *store.Store {
	t.Helper()
	st := dbtest.NewStore(t)
	dbtest.RequireFTS(t, st)

	write := func(conv *store.Conversation, msgs ...*store.MessageRecord) {
		t.Helper()
		if err := st.WithTx(func(tx *sql.Tx) error {
			if err := st.UpsertConversationTx(tx, conv); err != nil {
				return err
			}
			for _, m := range msgs {
				if err := st.ReplaceMessageTx(tx, m); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	nf := func(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

	write(
		&store.Conversation{ID: "c1", Title: "Refund request", CreatedAt: nf(900), UpdatedAt: nf(1000)},
		&store.MessageRecord{ID: "m-asst", ConversationID: "c1", Role: "assistant", CreatedAt: nf(900), Text: "I can help with that"},
		&store.MessageRecord{ID: "m-user", ConversationID: "c1", Role: "user", CreatedAt: nf(1000), Text: "please refund my bill"},
	)
	write(
		&store.Conversation{ID: "c2", Title: "Trip planning", CreatedAt: nf(5000), UpdatedAt: nf(5000)},
		&store.MessageRecord{ID: "m-trip", ConversationID: "c2", Role: "user", CreatedAt: nf(5000), Text: "plan a refund-free vacation"},
	)

	return st
}

func TestSearchFreeText(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	results, err := engine.Search(context.Background(), &search.Query{Match: "refund"}, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var ids []string
	for _, r := range results {
		ids = append(ids, r.MessageID)
	}
	// Porter stemming matches "refund" in both texts; order is by
	// creation time ascending.
	want := []string{"m-user", "m-trip"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("result ids mismatch (-want +got):\n%s", diff)
	}

	if results[0].Title != "Refund request" || results[0].Role != "user" {
		t.Errorf("display fields not joined: %+v", results[0])
	}
}

func TestSearchRoleFilter(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	q := &search.Query{Match: search.Translate("refund role:user")}
	results, err := engine.Search(context.Background(), q, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, r := range results {
		if r.Role != "user" {
			t.Errorf("role filter leaked a %s message: %s", r.Role, r.MessageID)
		}
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
}

func TestSearchTimeRange(t *testing.T) {
	st := dbtest.NewStore(t)
	dbtest.RequireFTS(t, st)

	day := func(d int) float64 {
		return float64(time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC).Unix())
	}
	nf := func(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

	if err := st.WithTx(func(tx *sql.Tx) error {
		if err := st.UpsertConversationTx(tx, &store.Conversation{ID: "c1", Title: "Log"}); err != nil {
			return err
		}
		for i, id := range []string{"m-jan05", "m-jan10", "m-jan20"} {
			d := []int{5, 10, 20}[i]
			if err := st.ReplaceMessageTx(tx, &store.MessageRecord{
				ID: id, ConversationID: "c1", Role: "user", CreatedAt: nf(day(d)), Text: "billing update",
			}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	engine := NewSQLiteEngine(st.DB())
	since, _ := search.ParseDate("2025-01-08")
	until, _ := search.ParseDate("2025-01-15")

	results, err := engine.Search(context.Background(), &search.Query{
		Match: "billing", Since: since, Until: until,
	}, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].MessageID != "m-jan10" {
		t.Fatalf("time range returned %+v, want just m-jan10", results)
	}

	// Date-only predicates work without any text match.
	results, err = engine.Search(context.Background(), &search.Query{Since: since}, 0)
	if err != nil {
		t.Fatalf("search without match: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("since-only results = %d, want 2", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	results, err := engine.Search(context.Background(), &search.Query{Match: "refund"}, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	results, err := engine.Search(context.Background(), &search.Query{Match: "zeppelin"}, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestSearchSyntaxErrorSurfaces(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	// Unbalanced quote is an FTS5 syntax error; it comes back to the
	// caller rather than being swallowed or reclassified.
	if _, err := engine.Search(context.Background(), &search.Query{Match: `"unbalanced`}, 0); err == nil {
		t.Error("expected an FTS5 syntax error")
	}
}

func TestSearchConsistentAfterReingest(t *testing.T) {
	st := seedRefundArchive(t)
	engine := NewSQLiteEngine(st.DB())

	// Overwrite m-user with the same content, as a re-ingestion would.
	if err := st.WithTx(func(tx *sql.Tx) error {
		return st.ReplaceMessageTx(tx, &store.MessageRecord{
			ID: "m-user", ConversationID: "c1", Role: "user",
			CreatedAt: sql.NullFloat64{Float64: 1000, Valid: true},
			Text:      "please refund my bill",
		})
	}); err != nil {
		t.Fatalf("reingest: %v", err)
	}

	results, err := engine.Search(context.Background(), &search.Query{Match: "bill"}, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	seen := 0
	for _, r := range results {
		if r.MessageID == "m-user" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("m-user appeared %d times, want exactly once", seen)
	}
}
