package naming

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/belegwerk-dev/belegwerk/internal/model"
)

// Construct formats the final filename from a completed DocumentRecord:
//
//	{date} - {issuer} - {document_type}: {recipient} - [{customer} - ]{account} - {description}.{ext}
//
// Every field is sanitized individually; the customer segment is included
// only when non-empty. Embedded newlines are stripped from the assembled
// string. Pure function of its inputs.
func Construct(rec model.DocumentRecord, ext, companyName string) string {
	issuer := Sanitize(rec.Issuer)
	docType := Sanitize(rec.DocumentType)
	recipient := Sanitize(rec.Recipient)
	if recipient == "" {
		recipient = Sanitize(companyName)
	}
	customer := Sanitize(rec.Customer)
	account := Sanitize(rec.Account)
	description := Sanitize(rec.Description)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s - %s: %s - ", rec.Date, issuer, docType, recipient)
	if customer != "" {
		b.WriteString(customer + " - ")
	}
	fmt.Fprintf(&b, "%s - %s.%s", account, description, ext)

	name := strings.ReplaceAll(b.String(), "\n", " ")
	return strings.ReplaceAll(name, "\r", "")
}

// ForPlatform applies the OS-specific final pass: Windows cannot take colons
// in filenames, everything else cannot take slashes.
func ForPlatform(filename string) string {
	if runtime.GOOS == "windows" {
		return strings.ReplaceAll(filename, ":", "-")
	}
	return strings.ReplaceAll(filename, "/", "-")
}
