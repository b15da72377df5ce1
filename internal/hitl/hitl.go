// Package hitl drives the interactive fallback when automated
// classification cannot complete a document: targeted prompts for missing
// mandatory fields, and a manual/fallback/skip menu when no usable JSON came
// back at all.
package hitl

import (
	"fmt"
	"path/filepath"

	"github.com/belegwerk-dev/belegwerk/internal/console"
	"github.com/belegwerk-dev/belegwerk/internal/desktop"
	"github.com/belegwerk-dev/belegwerk/internal/model"
)

// fieldLabels are the operator-facing prompts for mandatory fields.
var fieldLabels = map[model.Field]string{
	model.FieldDate:         "Datum (YYYY-MM-DD)",
	model.FieldIssuer:       "Aussteller",
	model.FieldDocumentType: "Dokumenttyp (Rechnung/Quittung/etc)",
	model.FieldAccount:      "Konto",
	model.FieldDescription:  "Beschreibung",
}

// Decision is the operator's choice for a document without usable JSON.
type Decision int

const (
	// DecisionManual carries an operator-typed replacement filename.
	DecisionManual Decision = iota
	// DecisionFallback asks for the deterministic fallback name.
	DecisionFallback
	// DecisionSkip leaves the document unprocessed in the input directory.
	DecisionSkip
)

// Engine resolves classification gaps with the operator. OpenFile shows the
// document being asked about; it defaults to the desktop opener.
type Engine struct {
	Console     *console.Console
	CompanyName string
	OpenFile    func(path string)
}

// New creates an Engine bound to the shared console.
func New(c *console.Console, companyName string) *Engine {
	return &Engine{Console: c, CompanyName: companyName, OpenFile: desktop.OpenFile}
}

// FillMissing completes the mandatory fields of a parsed record by prompting
// the operator for each empty one. The recipient defaults to the company
// name without a prompt. On return every mandatory field is non-empty; the
// only error is an exhausted input stream.
func (e *Engine) FillMissing(rec *model.DocumentRecord, filePath string) error {
	if rec.Recipient == "" {
		rec.Recipient = e.CompanyName
	}

	missing := rec.MissingMandatory()
	if len(missing) == 0 {
		return nil
	}

	var err error
	e.Console.Acquire(func() {
		c := e.Console
		c.Printf("\n")
		c.Rule()
		c.Errorf("FEHLENDE DATEN: %s", filepath.Base(filePath))
		c.Rule()
		c.Printf("  Öffne Datei: %s\n", filepath.Base(filePath))
		e.OpenFile(filePath)

		for _, f := range missing {
			value := c.PromptNonEmpty(fmt.Sprintf("  > Bitte eingeben: %s: ", fieldLabels[f]))
			if value == "" {
				err = fmt.Errorf("keine Eingabe für Feld %q", f)
				return
			}
			rec.Set(f, value)
		}
		c.Rule()
	})
	return err
}

// Intervene handles a document with no parseable classification after all
// retries. It shows a preview of the AI output, opens the file, and asks
// the operator to choose: type a full replacement filename, accept the
// deterministic fallback, or skip the document. For DecisionManual the
// returned filename includes the original extension. An exhausted input
// stream skips the document.
func (e *Engine) Intervene(filePath, rawOutput, ext string) (Decision, string) {
	decision := DecisionSkip
	var filename string

	e.Console.Acquire(func() {
		c := e.Console
		c.Printf("\n")
		c.Rule()
		c.Errorf("FEHLER BEIM PARSEN: %s", filepath.Base(filePath))
		c.Rule()
		c.Printf("%s\n", console.RenderTranscript(rawOutput))
		c.Rule()
		c.Printf("  Öffne Datei: %s\n", filepath.Base(filePath))
		e.OpenFile(filePath)

		for {
			choice := c.Menu(
				"Name manuell eingeben",
				"Fallback verwenden (Datum-Unbekannt)",
				"Datei überspringen",
			)
			switch choice {
			case 1:
				stem := c.Prompt("  Neuen Dateinamen eingeben (ohne Erweiterung): ")
				if stem == "" {
					continue
				}
				decision = DecisionManual
				filename = stem + "." + ext
				return
			case 2:
				decision = DecisionFallback
				return
			default:
				// Skip, including exhausted input.
				decision = DecisionSkip
				return
			}
		}
	})
	return decision, filename
}
