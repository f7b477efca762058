// Package export renders search results for the CLI.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wesm/chatvault/internal/query"
)

// consolePreviewRunes caps how much of a message body the console
// renderer shows per result.
const consolePreviewRunes = 500

var csvHeader = []string{"message_id", "conversation_id", "title", "role", "created_at", "text"}

// WriteCSV writes results as CSV rows with a header. Text is written
// in full; timestamps are ISO-formatted in UTC, empty when absent.
func WriteCSV(w io.Writer, results []query.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.MessageID,
			r.ConversationID,
			r.Title,
			r.Role,
			FormatTimestamp(r.CreatedAt),
			r.Text,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteConsole prints one block per result: a timestamp/role/title
// header line, a preview of the text with newlines collapsed to
// spaces, then a separator.
func WriteConsole(w io.Writer, results []query.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "[%s] (%s) %s\n", FormatTimestamp(r.CreatedAt), r.Role, r.Title); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, preview(r.Text)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.Repeat("-", 80)); err != nil {
			return err
		}
	}
	return nil
}

// FormatTimestamp renders unix seconds as "2006-01-02 15:04:05" UTC,
// or "" when absent.
func FormatTimestamp(ts *float64) string {
	if ts == nil {
		return ""
	}
	sec := int64(*ts)
	nsec := int64((*ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05")
}

func preview(text string) string {
	if runes := []rune(text); len(runes) > consolePreviewRunes {
		text = string(runes[:consolePreviewRunes])
	}
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}
