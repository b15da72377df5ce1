// Package pipeline orchestrates a renaming run: it enumerates eligible
// input files and drives each one through classification, retry, human
// fallback, and the copy-then-archive transition under a bounded worker
// pool. Each file is owned by exactly one worker; the console, the run log,
// and the target directories are the only shared resources.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/belegwerk-dev/belegwerk/internal/console"
	"github.com/belegwerk-dev/belegwerk/internal/extract"
	"github.com/belegwerk-dev/belegwerk/internal/gemini"
	"github.com/belegwerk-dev/belegwerk/internal/hitl"
	"github.com/belegwerk-dev/belegwerk/internal/model"
	"github.com/belegwerk-dev/belegwerk/internal/naming"
	"github.com/belegwerk-dev/belegwerk/internal/prompt"
	"github.com/belegwerk-dev/belegwerk/internal/runlog"
	"github.com/belegwerk-dev/belegwerk/internal/transfer"
)

const maxAttempts = 3

// allowedExtensions is the input file allow-list.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".tif":  true,
}

// Pipeline processes one input directory. All fields must be set; RetryDelay
// defaults to one second when zero.
type Pipeline struct {
	InputDir     string
	CompanyName  string
	ChartText    string
	PromptSuffix string
	Concurrency  int
	Limit        int

	Runner   gemini.Runner
	Console  *console.Console
	Log      *runlog.Log
	HITL     *hitl.Engine
	Transfer *transfer.Engine

	RetryDelay time.Duration

	mu      sync.Mutex
	summary model.RunSummary
}

// Enumerate lists the eligible input files sorted by name. limit 0 means all.
func Enumerate(inputDir string, limit int) ([]model.WorkItem, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(inputDir, entry.Name()))
		}
	}
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	items := make([]model.WorkItem, len(paths))
	for i, p := range paths {
		items[i] = model.WorkItem{
			Path:  p,
			Ext:   strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), "."),
			Index: i + 1,
			Total: len(paths),
		}
	}
	return items, nil
}

// Run processes every eligible file and returns the outcome tally. Per-file
// failures never abort the run.
func (p *Pipeline) Run() (model.RunSummary, error) {
	items, err := Enumerate(p.InputDir, p.Limit)
	if err != nil {
		return model.RunSummary{}, err
	}

	var g errgroup.Group
	g.SetLimit(p.Concurrency)
	for _, item := range items {
		item := item
		g.Go(func() error {
			p.record(p.processFile(item))
			return nil
		})
	}
	_ = g.Wait()

	return p.summary, nil
}

func (p *Pipeline) record(o model.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary.Add(o)
}

// processFile runs the whole per-file state machine and returns the
// terminal outcome.
func (p *Pipeline) processFile(item model.WorkItem) model.Outcome {
	p.Console.Acquire(func() {
		p.Console.Printf("[%d/%d] Verarbeite: %s\n", item.Index, item.Total, item.Name())
	})

	instruction := prompt.Build(item.Name(), p.CompanyName, p.ChartText, p.PromptSuffix)
	transcript, rec, parsed := p.classify(item, instruction)

	if err := p.Log.WriteTranscript(item.Name(), transcript); err != nil {
		p.Console.Acquire(func() {
			p.Console.Warnf("Transkript für %s nicht gespeichert: %v", item.Name(), err)
		})
	}

	var newName string
	if parsed {
		if err := p.HITL.FillMissing(&rec, item.Path); err != nil {
			return p.fail(item, err)
		}
		newName = naming.Construct(rec, item.Ext, p.CompanyName)
	} else {
		decision, manualName := p.HITL.Intervene(item.Path, transcript, item.Ext)
		switch decision {
		case hitl.DecisionSkip:
			p.Log.Skipped(item.Name(), transcript)
			p.Console.Acquire(func() {
				p.Console.Warnf("Übersprungen: %s", item.Name())
			})
			return model.OutcomeSkipped
		case hitl.DecisionManual:
			newName = manualName
		case hitl.DecisionFallback:
			newName = p.fallbackName(item)
		}
	}

	newName = naming.ForPlatform(newName)

	destPath, _, err := p.Transfer.Process(item.Path, newName)
	if err != nil {
		return p.fail(item, err)
	}

	p.Log.Success(item.Name(), filepath.Base(destPath), transcript)
	p.Console.Acquire(func() {
		p.Console.Successf("✓ %s → %s", item.Name(), filepath.Base(destPath))
	})
	return model.OutcomeDone
}

// classify invokes the AI up to maxAttempts times until output parses. A
// failed process call and unparseable output share the same retry budget.
func (p *Pipeline) classify(item model.WorkItem, instruction string) (transcript string, rec model.DocumentRecord, parsed bool) {
	delay := p.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := p.Runner.Run(filepath.Dir(item.Path), instruction)
		if err == nil {
			transcript = raw
			if strings.TrimSpace(transcript) != "" {
				if rec, parsed = extract.Parse(transcript); parsed {
					return transcript, rec, true
				}
			}
		}

		p.Console.Acquire(func() {
			p.Console.Warnf("Versuch %d/%d für %s fehlgeschlagen (keine validen Daten von Gemini).", attempt, maxAttempts, item.Name())
			if attempt < maxAttempts {
				p.Console.Warnf("Wiederhole in %v...", delay)
			}
		})
		if attempt < maxAttempts {
			time.Sleep(delay)
		}
	}
	return transcript, model.DocumentRecord{}, false
}

// fallbackName builds the deterministic name used when the operator accepts
// the fallback: file modification date plus placeholder fields.
func (p *Pipeline) fallbackName(item model.WorkItem) string {
	dateStr := "unbekanntes-datum"
	if info, err := os.Stat(item.Path); err == nil {
		dateStr = info.ModTime().Format("2006-01-02")
	}
	stem := strings.TrimSuffix(item.Name(), filepath.Ext(item.Name()))
	return fmt.Sprintf("%s - unbekannt - anderes - %s - unbekannt - %s.%s", dateStr, p.CompanyName, stem, item.Ext)
}

func (p *Pipeline) fail(item model.WorkItem, err error) model.Outcome {
	p.Log.Failure(item.Name(), err)
	p.Console.Acquire(func() {
		p.Console.Errorf("Fehler beim Verarbeiten von %s: %v", item.Name(), err)
	})
	return model.OutcomeFailed
}
