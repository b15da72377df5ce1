package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{"date":"2024-03-01","issuer":"Acme AG","document_type":"Rechnung","recipient":"MyCo","customer":"","account":"4400 - Einkauf","description":"Bürobedarf"}`

func TestParse_CleanJSON(t *testing.T) {
	rec, ok := Parse(validJSON)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", rec.Date)
	assert.Equal(t, "Acme AG", rec.Issuer)
	assert.Equal(t, "Rechnung", rec.DocumentType)
	assert.Equal(t, "4400 - Einkauf", rec.Account)
}

func TestParse_SurroundingChatter(t *testing.T) {
	raw := "Hier ist das Ergebnis:\n" + validJSON + "\nViel Erfolg!"
	rec, ok := Parse(raw)
	require.True(t, ok)
	assert.Equal(t, "Acme AG", rec.Issuer)
}

func TestParse_MultilineObject(t *testing.T) {
	raw := "```json\n{\n  \"date\": \"2024-03-01\",\n  \"issuer\": \"Acme AG\",\n  \"document_type\": \"Rechnung\",\n  \"recipient\": \"MyCo\",\n  \"customer\": null,\n  \"account\": \"4400 - Einkauf\",\n  \"description\": \"Bürobedarf\"\n}\n```"
	rec, ok := Parse(raw)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", rec.Date)
	assert.Empty(t, rec.Customer)
}

func TestParse_NullDate(t *testing.T) {
	raw := `{"date":null,"issuer":"Acme AG","document_type":"Rechnung","recipient":"","customer":"","account":"","description":""}`
	rec, ok := Parse(raw)
	require.True(t, ok)
	assert.Empty(t, rec.Date)
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"keine Daten gefunden",
		"{not json at all",
		"} {",
		"{ \"date\": }",
	} {
		_, ok := Parse(raw)
		assert.False(t, ok, "input %q", raw)
	}
}
