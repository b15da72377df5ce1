package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/belegwerk-dev/belegwerk/internal/accounts"
	"github.com/belegwerk-dev/belegwerk/internal/config"
	"github.com/belegwerk-dev/belegwerk/internal/console"
	"github.com/belegwerk-dev/belegwerk/internal/desktop"
	"github.com/belegwerk-dev/belegwerk/internal/gemini"
	"github.com/belegwerk-dev/belegwerk/internal/hitl"
	"github.com/belegwerk-dev/belegwerk/internal/pipeline"
	"github.com/belegwerk-dev/belegwerk/internal/runlog"
	"github.com/belegwerk-dev/belegwerk/internal/transfer"
)

type renameOptions struct {
	model        string
	concurrency  int
	limit        int
	inputDir     string
	outDir       string
	archiveDir   string
	logDir       string
	disableMCP   bool
	allowIgnored bool
	yes          bool
}

func newRenameCommand() *cobra.Command {
	var opts renameOptions

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Finanzdokumente mit Gemini AI klassifizieren und umbenennen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadOrDefault(configPath())
			applyRenameDefaults(&opts, cfg, cmd)
			return runRename(cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "Gemini Modell")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Anzahl gleichzeitiger Aufgaben")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximale Anzahl zu verarbeitender Dateien (0 = alle)")
	cmd.Flags().StringVar(&opts.inputDir, "input-dir", "", "Ordner mit den Eingabedateien")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Ordner für umbenannte Dateien")
	cmd.Flags().StringVar(&opts.archiveDir, "archive-dir", "", "Ordner für verarbeitete Originale")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Ordner für Logdateien")
	cmd.Flags().BoolVar(&opts.disableMCP, "no-mcp", true, "MCP-Server des Gemini CLI deaktivieren")
	cmd.Flags().BoolVar(&opts.allowIgnored, "allow-ignored", false, "auch von Ignore-Regeln versteckte Dateien lesen lassen")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "interaktive Konfiguration überspringen und Standardwerte verwenden")

	return cmd
}

// applyRenameDefaults fills every unset flag from the persisted config.
func applyRenameDefaults(opts *renameOptions, cfg *config.Config, cmd *cobra.Command) {
	if opts.model == "" {
		opts.model = cfg.Model
	}
	if opts.concurrency <= 0 {
		opts.concurrency = cfg.Concurrency
	}
	if !cmd.Flags().Changed("limit") {
		opts.limit = cfg.Limit
	}
	if opts.inputDir == "" {
		opts.inputDir = cfg.Directories.Input
	}
	if opts.outDir == "" {
		opts.outDir = cfg.Directories.Output
	}
	if opts.archiveDir == "" {
		opts.archiveDir = cfg.Directories.Archive
	}
	if opts.logDir == "" {
		opts.logDir = cfg.Directories.Logs
	}
}

func runRename(cfg *config.Config, opts renameOptions) error {
	c := console.New(os.Stdin, os.Stdout)

	c.Printf("\n")
	c.Rule()
	c.Title("BEXIO DOKUMENTE AI RENAMER")
	c.Printf("  Automatische Umbenennung von Finanzdokumenten mit Gemini AI\n")
	c.Printf("\n  Format: YYYY-MM-DD - Issuer - DocType: Recipient - Customer - Account - Description.ext\n")
	c.Printf("\n  Tipp: Du kannst jederzeit mit 'q' abbrechen\n\n")

	c.Rule()
	c.Title("ERFORDERLICHE KONFIGURATION")
	c.Rule()
	c.Printf("\n")

	if !ensureAPIKey(c) {
		return nil
	}
	companyName := ensureCompanyName(c, cfg)
	if companyName == "" {
		return nil
	}

	geminiCmd, err := gemini.ResolveCommand()
	if err != nil {
		c.Errorf("FEHLER: Weder 'gemini' noch 'npx' wurde gefunden.")
		c.Printf("  Bitte installiere eines der folgenden:\n")
		c.Printf("    - gemini CLI Tool\n")
		c.Printf("    - Node.js (für npx)\n")
		return err
	}

	chart, err := accounts.Load(accountsPath(configPath()))
	if err != nil {
		c.Warnf("Fehler beim Lesen von accounts.csv: %v", err)
	}
	var chartText string
	if chart != nil {
		chartText = chart.ChartText()
		c.Successf("✓ Kontenliste (accounts.csv) gefunden")
	} else {
		c.Warnf("Kontenliste (accounts.csv) nicht gefunden - Kontonamen werden geschätzt")
	}
	c.Printf("\n")

	if !opts.yes {
		if !configureDirectories(c, &opts) {
			return nil
		}
		if !configureProcessing(c, &opts) {
			return nil
		}
	}

	for _, dir := range []string{opts.inputDir, opts.outDir, opts.archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	log, err := runlog.Open(opts.logDir)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer log.Close()

	// Persist the confirmed settings for the next run.
	cfg.CompanyName = companyName
	cfg.Model = opts.model
	cfg.Concurrency = opts.concurrency
	cfg.Directories.Input = opts.inputDir
	cfg.Directories.Output = opts.outDir
	cfg.Directories.Archive = opts.archiveDir
	cfg.Directories.Logs = opts.logDir
	if err := config.Save(configPath(), cfg); err != nil {
		c.Warnf("Konfiguration nicht gespeichert: %v", err)
	}

	items, err := pipeline.Enumerate(opts.inputDir, opts.limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.Printf("Keine passenden Dateien gefunden.\n")
		return nil
	}

	c.Printf("\n")
	c.Rule()
	c.Printf("  Starte Verarbeitung: %d Datei(en) mit %d Thread(s)\n\n", len(items), opts.concurrency)

	p := &pipeline.Pipeline{
		InputDir:     opts.inputDir,
		CompanyName:  companyName,
		ChartText:    chartText,
		PromptSuffix: cfg.CustomPromptSuffix,
		Concurrency:  opts.concurrency,
		Limit:        opts.limit,
		Runner: &gemini.CLI{
			Command:      geminiCmd,
			Model:        opts.model,
			DisableMCP:   opts.disableMCP,
			AllowIgnored: opts.allowIgnored,
		},
		Console:  c,
		Log:      log,
		HITL:     hitl.New(c, companyName),
		Transfer: &transfer.Engine{OutputDir: opts.outDir, ArchiveDir: opts.archiveDir},
	}

	summary, err := p.Run()
	if err != nil {
		return err
	}

	c.Printf("\n")
	c.Rule()
	c.Successf("✓ Verarbeitung abgeschlossen!")
	c.Printf("  Umbenannt: %d  Übersprungen: %d  Fehler: %d\n", summary.Done, summary.Skipped, summary.Failed)
	c.Printf("  Prüfe den Ordner '%s' für die umbenannten Dateien.\n", opts.outDir)

	if c.Confirm(fmt.Sprintf("\n  Soll der Ordner '%s' geöffnet werden?", opts.outDir)) {
		c.Printf("  Öffne Ordner: %s\n", opts.outDir)
		desktop.OpenDirectory(opts.outDir)
	}
	return nil
}

// configureDirectories lets the operator confirm or override the directory
// layout. Returns false when the operator quits.
func configureDirectories(c *console.Console, opts *renameOptions) bool {
	c.Rule()
	c.Title("ORDNER-KONFIGURATION")
	c.Rule()

	prompts := []struct {
		label string
		value *string
	}{
		{"Input-Ordner (Downloads)", &opts.inputDir},
		{"Output-Ordner (Benannt)", &opts.outDir},
		{"Archiv-Ordner (Verarbeitet)", &opts.archiveDir},
		{"Log-Ordner", &opts.logDir},
	}
	for _, p := range prompts {
		answer := c.Prompt(fmt.Sprintf("  %s [Standard: %s]: ", p.label, *p.value))
		if console.IsQuit(answer) {
			return false
		}
		if answer != "" {
			*p.value = answer
		}
	}
	return true
}

// configureProcessing asks for limit, concurrency, and model. Malformed
// numbers keep the previous value.
func configureProcessing(c *console.Console, opts *renameOptions) bool {
	c.Printf("\n")
	c.Rule()
	c.Title("VERARBEITUNGS-KONFIGURATION")
	c.Rule()

	limitLabel := "Alle"
	if opts.limit > 0 {
		limitLabel = strconv.Itoa(opts.limit)
	}
	answer := c.Prompt(fmt.Sprintf("  Anzahl der zu verarbeitenden Dateien [Standard: %s]: ", limitLabel))
	if console.IsQuit(answer) {
		return false
	}
	if answer != "" {
		if val, err := strconv.Atoi(answer); err == nil && val >= 0 {
			opts.limit = val
		} else {
			c.Warnf("Ungültige Zahl, verwende %s.", limitLabel)
		}
	}

	answer = c.Prompt(fmt.Sprintf("  Gleichzeitige Aufgaben [Standard: %d]: ", opts.concurrency))
	if console.IsQuit(answer) {
		return false
	}
	if answer != "" {
		if val, err := strconv.Atoi(answer); err == nil && val > 0 {
			opts.concurrency = val
		} else {
			c.Warnf("Ungültige Zahl, verwende %d.", opts.concurrency)
		}
	}

	answer = c.Prompt(fmt.Sprintf("  Gemini Modell [Standard: %s]: ", opts.model))
	if console.IsQuit(answer) {
		return false
	}
	if answer != "" {
		opts.model = answer
	}

	return true
}
