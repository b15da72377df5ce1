package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_ReferencesFileAndCompany(t *testing.T) {
	p := Build("invoice1.pdf", "Muster AG", "", "")

	assert.Contains(t, p, "@invoice1.pdf")
	assert.Contains(t, p, `"Muster AG"`)
	assert.Contains(t, p, `"date"`)
	assert.Contains(t, p, `"account"`)
	assert.Contains(t, p, "YYYY-MM-DD")
}

func TestBuild_WithChart(t *testing.T) {
	chart := "4400 - Einkauf Dienstleistungen\n6570 - Informatikaufwand"
	p := Build("a.pdf", "Muster AG", chart, "")

	assert.Contains(t, p, "verwende diese Liste")
	assert.Contains(t, p, "6570 - Informatikaufwand")
	assert.NotContains(t, p, "Keine Kontenliste verfügbar")
}

func TestBuild_WithoutChart(t *testing.T) {
	p := Build("a.pdf", "Muster AG", "", "")

	assert.Contains(t, p, "Keine Kontenliste verfügbar")
	assert.Contains(t, p, "Schätze den passenden Kontonamen")
}

func TestBuild_CustomSuffix(t *testing.T) {
	p := Build("a.pdf", "Muster AG", "", "Zusatz: Projektnummern beachten.")
	assert.Contains(t, p, "Zusatz: Projektnummern beachten.")
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build("a.pdf", "Muster AG", "4400 - Einkauf", "suffix")
	b := Build("a.pdf", "Muster AG", "4400 - Einkauf", "suffix")
	assert.Equal(t, a, b)
}
