package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRecordJSONTags(t *testing.T) {
	data := `{
		"date": "2024-03-01",
		"issuer": "Acme AG",
		"document_type": "Rechnung",
		"recipient": "Muster AG",
		"customer": "",
		"account": "4400",
		"description": "Bürobedarf"
	}`

	var rec DocumentRecord
	require.NoError(t, json.Unmarshal([]byte(data), &rec))
	assert.Equal(t, "2024-03-01", rec.Date)
	assert.Equal(t, "Rechnung", rec.DocumentType)
	assert.Equal(t, "4400", rec.Account)
}

func TestGetSetRoundTrip(t *testing.T) {
	var rec DocumentRecord
	for _, f := range []Field{FieldDate, FieldIssuer, FieldDocumentType, FieldRecipient, FieldCustomer, FieldAccount, FieldDescription} {
		rec.Set(f, "wert-"+string(f))
		assert.Equal(t, "wert-"+string(f), rec.Get(f))
	}
}

func TestMissingMandatory(t *testing.T) {
	rec := DocumentRecord{
		Date:         "2024-01-01",
		Issuer:       "Swisscom",
		DocumentType: "Rechnung",
		Description:  "Telefon",
	}

	missing := rec.MissingMandatory()
	assert.Equal(t, []Field{FieldAccount}, missing)

	rec.Account = "6510"
	assert.Empty(t, rec.MissingMandatory())
}

func TestMissingMandatoryIgnoresOptionalFields(t *testing.T) {
	rec := DocumentRecord{
		Date:         "2024-01-01",
		Issuer:       "Swisscom",
		DocumentType: "Rechnung",
		Account:      "6510",
		Description:  "Telefon",
	}

	// Recipient and customer may stay empty.
	assert.Empty(t, rec.MissingMandatory())
}

func TestRunSummary(t *testing.T) {
	var s RunSummary
	s.Add(OutcomeDone)
	s.Add(OutcomeDone)
	s.Add(OutcomeSkipped)
	s.Add(OutcomeFailed)

	assert.Equal(t, 2, s.Done)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 4, s.Total())
}

func TestWorkItemName(t *testing.T) {
	w := WorkItem{Path: "/daten/downloads/scan001.pdf", Ext: "pdf"}
	assert.Equal(t, "scan001.pdf", w.Name())
}
