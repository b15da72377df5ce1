package accounts

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belegwerk-dev/belegwerk/internal/model"
)

func TestRoundTrip(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "4400", Name: "Einkauf Dienstleistungen"},
		{Code: "6570", Name: "Informatikaufwand"},
	})

	path := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, svc.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.All(), 2)

	acct, ok := got.Get("4400")
	require.True(t, ok)
	assert.Equal(t, "Einkauf Dienstleistungen", acct.Name)
}

func TestLoad_Missing(t *testing.T) {
	svc, err := Load(filepath.Join(t.TempDir(), "accounts.csv"))
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestChartText(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "4400", Name: "Einkauf Dienstleistungen"},
		{Code: "6570", Name: "Informatikaufwand"},
	})

	text := svc.ChartText()
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "4400 - Einkauf Dienstleistungen", lines[0])
	assert.Equal(t, "6570 - Informatikaufwand", lines[1])
}

func TestReadAccounts_BadRow(t *testing.T) {
	_, err := ReadAccounts(strings.NewReader("account_code,account_name\n,nameless\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.NotEmpty(t, chart)
	svc := NewService(chart)
	_, ok := svc.Get("4400")
	assert.True(t, ok)
}
