package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wesm/chatvault/internal/query"
)

func ts(v float64) *float64 { return &v }

func TestWriteCSV(t *testing.T) {
	results := []query.Result{
		{
			MessageID:      "m1",
			ConversationID: "c1",
			Title:          "Refund request",
			Role:           "user",
			CreatedAt:      ts(1704067200), // 2024-01-01 00:00:00 UTC
			Text:           "line one\nline two, with comma",
		},
		{
			MessageID:      "m2",
			ConversationID: "c1",
			Title:          "Refund request",
			Role:           "assistant",
			CreatedAt:      nil,
			Text:           "no timestamp",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		{"message_id", "conversation_id", "title", "role", "created_at", "text"},
		{"m1", "c1", "Refund request", "user", "2024-01-01 00:00:00", "line one\nline two, with comma"},
		{"m2", "c1", "Refund request", "assistant", "", "no timestamp"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteConsole(t *testing.T) {
	results := []query.Result{
		{
			MessageID:      "m1",
			ConversationID: "c1",
			Title:          "Refund request",
			Role:           "user",
			CreatedAt:      ts(1704067200),
			Text:           "first line\nsecond line",
		},
	}

	var buf bytes.Buffer
	if err := WriteConsole(&buf, results); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "[2024-01-01 00:00:00] (user) Refund request") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "first line second line") {
		t.Errorf("newlines not collapsed:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", 80)) {
		t.Errorf("missing separator:\n%s", out)
	}
}

func TestWriteConsoleTruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", 600)
	var buf bytes.Buffer
	if err := WriteConsole(&buf, []query.Result{{Role: "user", Text: long}}); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	if strings.Contains(buf.String(), strings.Repeat("x", 501)) {
		t.Error("preview exceeds 500 characters")
	}
	if !strings.Contains(buf.String(), strings.Repeat("x", 500)) {
		t.Error("preview shorter than 500 characters")
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(nil); got != "" {
		t.Errorf("FormatTimestamp(nil) = %q, want empty", got)
	}
	if got := FormatTimestamp(ts(0)); got != "1970-01-01 00:00:00" {
		t.Errorf("FormatTimestamp(0) = %q", got)
	}
}
