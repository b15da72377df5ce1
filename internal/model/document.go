package model

// DocumentType classifies a financial document.
type DocumentType string

const (
	DocumentTypeInvoice      DocumentType = "Rechnung"
	DocumentTypeReceipt      DocumentType = "Quittung"
	DocumentTypeConfirmation DocumentType = "Bestaetigung"
	DocumentTypeOther        DocumentType = "Anderes"
)

// Field names one of the seven classification fields.
type Field string

const (
	FieldDate         Field = "date"
	FieldIssuer       Field = "issuer"
	FieldDocumentType Field = "document_type"
	FieldRecipient    Field = "recipient"
	FieldCustomer     Field = "customer"
	FieldAccount      Field = "account"
	FieldDescription  Field = "description"
)

// MandatoryFields must be non-empty before a filename is constructed.
// Recipient is not listed: it defaults to the company name instead.
var MandatoryFields = []Field{
	FieldDate,
	FieldIssuer,
	FieldDocumentType,
	FieldAccount,
	FieldDescription,
}

// DocumentRecord is the structured classification result for one input file.
// Field tags match the JSON contract given to the AI in the prompt.
type DocumentRecord struct {
	Date         string `json:"date"`
	Issuer       string `json:"issuer"`
	DocumentType string `json:"document_type"`
	Recipient    string `json:"recipient"`
	Customer     string `json:"customer"`
	Account      string `json:"account"`
	Description  string `json:"description"`
}

// Get returns the value of a field.
func (r *DocumentRecord) Get(f Field) string {
	switch f {
	case FieldDate:
		return r.Date
	case FieldIssuer:
		return r.Issuer
	case FieldDocumentType:
		return r.DocumentType
	case FieldRecipient:
		return r.Recipient
	case FieldCustomer:
		return r.Customer
	case FieldAccount:
		return r.Account
	case FieldDescription:
		return r.Description
	}
	return ""
}

// Set assigns the value of a field.
func (r *DocumentRecord) Set(f Field, value string) {
	switch f {
	case FieldDate:
		r.Date = value
	case FieldIssuer:
		r.Issuer = value
	case FieldDocumentType:
		r.DocumentType = value
	case FieldRecipient:
		r.Recipient = value
	case FieldCustomer:
		r.Customer = value
	case FieldAccount:
		r.Account = value
	case FieldDescription:
		r.Description = value
	}
}

// MissingMandatory returns the mandatory fields that are still empty.
func (r *DocumentRecord) MissingMandatory() []Field {
	var missing []Field
	for _, f := range MandatoryFields {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
