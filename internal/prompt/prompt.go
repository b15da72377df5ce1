// Package prompt builds the instruction text sent to the Gemini CLI for one
// document. The output is deterministic: identical inputs produce an
// identical prompt.
package prompt

import (
	"fmt"
	"strings"
)

const accountsWithChart = `Aufwandskonto (verwende diese Liste zur Zuordnung):
%s

Wichtig: Das "account" Feld muss im Format "Nummer - Name" sein (z.B. "4400 - Einkauf Dienstleistungen").`

const accountsEstimated = `Aufwandskonto:
Hinweis: Keine Kontenliste verfügbar. Schätze den passenden Kontonamen basierend auf üblichen Schweizer Buchhaltungskonten.
Das "account" Feld sollte im Format "Nummer - Name" sein (z.B. "4400 - Einkauf Dienstleistungen").`

// Build constructs the classification prompt for a single file. chartText is
// the rendered chart of accounts, or empty when no chart is available.
// customSuffix is appended verbatim when non-empty.
func Build(fileName, companyName, chartText, customSuffix string) string {
	accountsSection := accountsEstimated
	if chartText != "" {
		accountsSection = fmt.Sprintf(accountsWithChart, chartText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Du bist ein erfahrener Buchhaltungsassistent.
Deine Aufgabe ist es, strukturierte Daten aus der Datei @%s zu extrahieren, damit diese ordnungsgemäss umbenannt werden kann.

Analysiere den Inhalt (Bild oder PDF) und den Dateinamen.
Antworte AUSSCHLIESSLICH mit einem validen JSON-Objekt. Keine Markdown-Formatierung, kein Text davor oder danach.

Das JSON muss folgende Felder enthalten:
{
  "date": "YYYY-MM-DD",          // Das Belegdatum. Falls nicht auffindbar: null.
  "issuer": "Firmenname",        // Wer hat das Dokument ausgestellt?
  "document_type": "Typ",        // "Rechnung", "Quittung", "Bestaetigung" oder "Anderes"
  "recipient": "Empfänger",      // Default: "%[2]s". Wenn nicht %[2]s, dann ist der Empfänger ein Kunde.
  "customer": "Kundenname",      // Optional: Name des Kunden, falls zutreffend (sonst null oder leerer String).
  "account": "Konto",            // Das Aufwandskonto
  "description": "Beschreibung"  // Kurze Beschreibung der Transaktion (max 5-6 Wörter, Deutsch).
}

%[3]s

Hinweise:
1. Datum: Format YYYY-MM-DD.
2. recipient: Wenn kein Empfänger erkennbar ist, nimm "%[2]s".
3. Sanitize: Die Werte in den Feldern dürfen keine ungültigen Dateinamen-Zeichen enthalten.
`, fileName, companyName, accountsSection)

	if customSuffix != "" {
		b.WriteString("\n" + customSuffix + "\n")
	}
	return b.String()
}
