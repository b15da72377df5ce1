package runlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func openTestLog(t *testing.T) (*Log, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := Open(dir)
	require.NoError(t, err)
	l.now = func() time.Time { return testTime }
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	return string(data)
}

func TestOpen_CreatesLayout(t *testing.T) {
	_, dir := openTestLog(t)

	info, err := os.Stat(filepath.Join(dir, rawDirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSuccess_Format(t *testing.T) {
	l, dir := openTestLog(t)
	l.Success("invoice1.pdf", "2024-03-01 - Acme AG - Rechnung: MyCo - 4400 - Einkauf - Bürobedarf.pdf", "raw output")

	got := readLog(t, dir)
	assert.Contains(t, got, "2025-01-15T10:30:00Z | ERFOLG | invoice1.pdf | 2024-03-01 - Acme AG - Rechnung: MyCo - 4400 - Einkauf - Bürobedarf.pdf | Gemini Output:\nraw output\n")
}

func TestSkipped_Format(t *testing.T) {
	l, dir := openTestLog(t)
	l.Skipped("invoice1.pdf", "nichts erkannt")

	got := readLog(t, dir)
	assert.Contains(t, got, "ÜBERSPRUNGEN | invoice1.pdf | - | Gemini Output:\nnichts erkannt")
}

func TestFailure_Format(t *testing.T) {
	l, dir := openTestLog(t)
	l.Failure("invoice1.pdf", errors.New("copy failed"))

	got := readLog(t, dir)
	assert.Contains(t, got, "FEHLER | invoice1.pdf | - | Fehler: copy failed")
}

func TestAppend_Accumulates(t *testing.T) {
	l, dir := openTestLog(t)
	l.Success("a.pdf", "x.pdf", "out")
	l.Skipped("b.pdf", "out")
	l.Failure("c.pdf", errors.New("kaputt"))

	got := readLog(t, dir)
	assert.Contains(t, got, "ERFOLG | a.pdf")
	assert.Contains(t, got, "ÜBERSPRUNGEN | b.pdf")
	assert.Contains(t, got, "FEHLER | c.pdf")
}

func TestWriteTranscript(t *testing.T) {
	l, dir := openTestLog(t)
	require.NoError(t, l.WriteTranscript("invoice1.pdf", "model said things"))

	data, err := os.ReadFile(filepath.Join(dir, rawDirName, "invoice1.pdf.raw.txt"))
	require.NoError(t, err)
	assert.Equal(t, "=== 2025-01-15T10:30:00Z | invoice1.pdf ===\nmodel said things\n", string(data))
}

func TestConcurrentAppends_NeverInterleave(t *testing.T) {
	l, dir := openTestLog(t)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Failure(fmt.Sprintf("file%d.pdf", i), errors.New("e"))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(readLog(t, dir), "\n"), "\n")
	require.Len(t, lines, writers)
	for _, line := range lines {
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T[0-9:]+Z \| FEHLER \| file\d+\.pdf \| - \| Fehler: e$`, line)
	}
}
