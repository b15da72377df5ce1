package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belegwerk-dev/belegwerk/internal/bexio"
	"github.com/belegwerk-dev/belegwerk/internal/console"
)

func testConsole(input string) *console.Console {
	var out bytes.Buffer
	return console.New(strings.NewReader(input), &out)
}

func TestBuildQueryFromFlags(t *testing.T) {
	c := testConsole("")

	query, ok := buildQuery(c, downloadOptions{all: true})
	require.True(t, ok)
	assert.Equal(t, "all", query.ArchivedState)
	assert.Empty(t, query.Terms)

	query, ok = buildQuery(c, downloadOptions{latest: 25})
	require.True(t, ok)
	assert.Equal(t, 25, query.Limit)
	assert.Equal(t, "id_desc", query.OrderBy)

	query, ok = buildQuery(c, downloadOptions{name: "Rechnung"})
	require.True(t, ok)
	require.Len(t, query.Terms, 1)
	assert.Equal(t, "name", query.Terms[0].Field)
}

func TestBuildQueryDateRange(t *testing.T) {
	c := testConsole("")

	query, ok := buildQuery(c, downloadOptions{dateRange: []string{"2024-01-01", "2024-01-31"}})
	require.True(t, ok)
	require.Len(t, query.Terms, 2)
	assert.Equal(t, ">=", query.Terms[0].Criteria)
	assert.Equal(t, "<=", query.Terms[1].Criteria)
	assert.Equal(t, "2024-01-31T23:59:59Z", query.Terms[1].Value)
}

func TestBuildQueryInvalidDate(t *testing.T) {
	c := testConsole("")

	_, ok := buildQuery(c, downloadOptions{since: "31.01.2024"})
	assert.False(t, ok)
}

func TestInteractiveQuerySearchByName(t *testing.T) {
	// Option 8, search term, archive status 2, referenced status 3.
	c := testConsole("8\nRechnung\n2\n3\n")

	query, ok := interactiveQuery(c)
	require.True(t, ok)
	assert.Equal(t, "not_archived", query.ArchivedState)
	require.Len(t, query.Terms, 2)
	assert.Equal(t, "name", query.Terms[0].Field)
	assert.Equal(t, "is_referenced", query.Terms[1].Field)
	assert.Equal(t, false, query.Terms[1].Value)
}

func TestInteractiveQueryLatest(t *testing.T) {
	// Option 6, count, archive status default.
	c := testConsole("6\n15\n1\n")

	query, ok := interactiveQuery(c)
	require.True(t, ok)
	assert.Equal(t, 15, query.Limit)
	assert.Equal(t, "id_desc", query.OrderBy)
	assert.Equal(t, "all", query.ArchivedState)
	assert.Empty(t, query.Terms)
}

func TestInteractiveQueryInbox(t *testing.T) {
	c := testConsole("2\n")

	query, ok := interactiveQuery(c)
	require.True(t, ok)
	assert.Equal(t, "not_archived", query.ArchivedState)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), end)

	_, _, err = parseDateRange("2024-03-01", "kein datum")
	assert.Error(t, err)
}

func TestEnsureTokenFromEnv(t *testing.T) {
	t.Setenv(bexio.TokenEnvVar, "pat-123")
	c := testConsole("")

	assert.Equal(t, "pat-123", ensureToken(c))
}

func TestEnsureTokenPrompted(t *testing.T) {
	t.Setenv(bexio.TokenEnvVar, "")
	// Decline the browser, then enter the token.
	c := testConsole("n\npat-456\n")

	assert.Equal(t, "pat-456", ensureToken(c))
}

func TestEnsureTokenQuit(t *testing.T) {
	t.Setenv(bexio.TokenEnvVar, "")
	c := testConsole("n\nq\n")

	assert.Equal(t, "", ensureToken(c))
}
