package console

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/belegwerk-dev/belegwerk/internal/extract"
)

const (
	previewLines = 8
	previewWidth = 66
)

var fieldLabels = []struct {
	key   string
	label string
}{
	{"date", "Datum"},
	{"issuer", "Aussteller"},
	{"document_type", "Dokumenttyp"},
	{"recipient", "Empfänger"},
	{"customer", "Kunde"},
	{"account", "Konto"},
	{"description", "Beschreibung"},
}

// RenderTranscript formats AI output for the operator. When the output holds
// a recoverable JSON object the parsed fields are listed; otherwise the first
// lines of the raw text are shown, word-wrapped and truncated.
func RenderTranscript(raw string) string {
	if rec, ok := extract.Parse(raw); ok {
		values := map[string]string{
			"date":          rec.Date,
			"issuer":        rec.Issuer,
			"document_type": rec.DocumentType,
			"recipient":     rec.Recipient,
			"customer":      rec.Customer,
			"account":       rec.Account,
			"description":   rec.Description,
		}
		lines := []string{"  Extrahierte Daten:"}
		for _, f := range fieldLabels {
			if v := values[f.key]; v != "" {
				lines = append(lines, fmt.Sprintf("     %s: %s", f.label, v))
			}
		}
		return strings.Join(lines, "\n")
	}

	wrapped := wordwrap.String(strings.TrimSpace(raw), previewWidth)
	rawLines := strings.Split(wrapped, "\n")

	lines := []string{"  Gemini Ausgabe:"}
	for i, line := range rawLines {
		if i >= previewLines {
			lines = append(lines, "     ... (weitere Zeilen gekürzt) ...")
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, "     "+trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
