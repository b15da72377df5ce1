package model

import "path/filepath"

// WorkItem is one input file under processing.
type WorkItem struct {
	Path  string // absolute path of the source file
	Ext   string // lowercase extension without the dot
	Index int    // 1-based position for progress display
	Total int    // total number of items in this run
}

// Name returns the base name of the source file.
func (w WorkItem) Name() string {
	return filepath.Base(w.Path)
}

// Outcome is the terminal state of a WorkItem. Exactly one per item.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// RunSummary tallies outcomes for the end-of-run report.
type RunSummary struct {
	Done    int
	Skipped int
	Failed  int
}

// Add counts one outcome.
func (s *RunSummary) Add(o Outcome) {
	switch o {
	case OutcomeDone:
		s.Done++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of counted items.
func (s *RunSummary) Total() int {
	return s.Done + s.Skipped + s.Failed
}
