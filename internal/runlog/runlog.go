// Package runlog keeps the append-only record of every processing outcome,
// plus one raw AI transcript file per processed document. Appends are
// serialized so concurrent workers never interleave mid-line.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logFileName = "ai-renamer.log"
	rawDirName  = "gemini_raw"
)

// Log is the run log for one processing run.
type Log struct {
	mu     sync.Mutex
	file   *os.File
	rawDir string
	now    func() time.Time
}

// Open creates the log directory layout and opens the run log for appending.
func Open(logDir string) (*Log, error) {
	rawDir := filepath.Join(logDir, rawDirName)
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dirs: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	return &Log{file: f, rawDir: rawDir, now: time.Now}, nil
}

// Close closes the underlying log file.
func (l *Log) Close() error {
	return l.file.Close()
}

// Success records a renamed document.
func (l *Log) Success(originalName, newName, transcript string) {
	l.append(fmt.Sprintf("ERFOLG | %s | %s | Gemini Output:\n%s", originalName, newName, transcript))
}

// Skipped records an operator-declined document.
func (l *Log) Skipped(originalName, transcript string) {
	l.append(fmt.Sprintf("ÜBERSPRUNGEN | %s | - | Gemini Output:\n%s", originalName, transcript))
}

// Failure records a processing error.
func (l *Log) Failure(originalName string, err error) {
	l.append(fmt.Sprintf("FEHLER | %s | - | Fehler: %v", originalName, err))
}

func (l *Log) append(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "%s | %s\n", l.now().Format(time.RFC3339), entry)
}

// WriteTranscript stores the filtered AI output for one document under
// gemini_raw/{original-name}.raw.txt with a timestamped header.
func (l *Log) WriteTranscript(originalName, transcript string) error {
	path := filepath.Join(l.rawDir, originalName+".raw.txt")
	content := fmt.Sprintf("=== %s | %s ===\n%s\n", l.now().Format(time.RFC3339), originalName, transcript)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}
