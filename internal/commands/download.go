package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/belegwerk-dev/belegwerk/internal/bexio"
	"github.com/belegwerk-dev/belegwerk/internal/config"
	"github.com/belegwerk-dev/belegwerk/internal/console"
	"github.com/belegwerk-dev/belegwerk/internal/desktop"
)

type downloadOptions struct {
	name        string
	dateRange   []string
	since       string
	days        int
	latest      int
	all         bool
	notArchived bool
	inbox       bool
	downloadDir string
	debug       bool
}

// hasMode reports whether any non-interactive download mode was selected.
func (o downloadOptions) hasMode() bool {
	return o.name != "" || len(o.dateRange) > 0 || o.since != "" ||
		o.days > 0 || o.latest > 0 || o.all || o.notArchived || o.inbox
}

func newDownloadCommand() *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Dokumente aus Bexio herunterladen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.dateRange) != 0 && len(opts.dateRange) != 2 {
				return fmt.Errorf("--date-range erwartet genau zwei Daten (Start und Ende)")
			}
			return runDownload(opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "lade Dateien, die den Suchbegriff im Namen enthalten")
	cmd.Flags().StringSliceVar(&opts.dateRange, "date-range", nil, "lade Dateien innerhalb eines Zeitraums (JJJJ-MM-TT,JJJJ-MM-TT)")
	cmd.Flags().StringVar(&opts.since, "since", "", "lade nur Dateien, die seit diesem Datum erstellt wurden (JJJJ-MM-TT)")
	cmd.Flags().IntVar(&opts.days, "days", 0, "lade nur Dateien aus den letzten X Tagen")
	cmd.Flags().IntVar(&opts.latest, "latest", 0, "lade die X neuesten Dateien")
	cmd.Flags().BoolVar(&opts.all, "all", false, "lade alle Dateien (inkl. archivierte)")
	cmd.Flags().BoolVar(&opts.notArchived, "not-archived", false, "lade nur nicht-archivierte Dateien")
	cmd.Flags().BoolVar(&opts.inbox, "inbox", false, "lade nur Dateien aus der Inbox")
	cmd.Flags().StringVar(&opts.downloadDir, "download-dir", "", "Ordner für heruntergeladene Dateien")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "API-Anfragen und -Antworten in eine Logdatei schreiben")

	return cmd
}

func runDownload(opts downloadOptions) error {
	c := console.New(os.Stdin, os.Stdout)
	cfg := config.LoadOrDefault(configPath())

	c.Printf("\n")
	c.Rule()
	c.Title("BEXIO DOKUMENTE DOWNLOADER")
	c.Printf("  Download von Dokumenten aus Bexio\n")
	c.Printf("\n  Tipp: Du kannst jederzeit mit 'q' abbrechen\n\n")

	token := ensureToken(c)
	if token == "" {
		return nil
	}
	client := bexio.NewClient(token)

	if opts.debug {
		if err := os.MkdirAll(cfg.Directories.Logs, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		debugPath := filepath.Join(cfg.Directories.Logs, "bexio-api-debug.log")
		debugFile, err := os.OpenFile(debugPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer debugFile.Close()
		client.Debug = debugFile
		c.Printf("  Debug-Modus aktiviert. API-Antworten werden in '%s' geloggt.\n\n", debugPath)
	}

	dir := opts.downloadDir
	if dir == "" {
		dir = cfg.Directories.Input
	}
	c.Printf("  Zielordner: %s\n", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	query, ok := buildQuery(c, opts)
	if !ok {
		return nil
	}

	c.Printf("\n")
	c.Rule()
	c.Printf("  Lade Dateiliste...\n")
	c.Rule()

	ctx := context.Background()
	files, err := client.ListFiles(ctx, query)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		c.Printf("\n  Keine Dokumente für die Auswahl gefunden.\n")
		return nil
	}

	c.Printf("\n")
	c.Rule()
	c.Successf("✓ %d Dokument(e) gefunden", len(files))
	c.Printf("  Download nach: %s\n\n", dir)

	var downloaded, failed int
	client.DownloadAll(ctx, files, dir, func(res bexio.DownloadResult) {
		c.Acquire(func() {
			if res.Err != nil {
				failed++
				c.Errorf("%s: %v", res.File.Filename(), res.Err)
				return
			}
			downloaded++
			c.Successf("✓ [%d/%d] %s", downloaded, len(files), filepath.Base(res.Path))
		})
	})

	if failed > 0 {
		c.Warnf("%d Datei(en) fehlgeschlagen", failed)
	}
	c.Printf("\n")
	c.Rule()
	c.Successf("✓ Download abgeschlossen!")

	if c.Confirm("\n  Möchten Sie die heruntergeladenen Dateien anzeigen?") {
		c.Printf("  Öffne Ordner: %s\n", dir)
		desktop.OpenDirectory(dir)
	}

	if downloaded > 0 {
		c.Printf("\n")
		c.Rule()
		c.Title("AI RENAMER")
		c.Rule()
		if c.Confirm("  Möchtest du die heruntergeladenen Dateien jetzt mit AI umbenennen?") {
			c.Printf("\n  Starte AI Renamer...\n")
			renameOpts := renameOptions{inputDir: dir, disableMCP: true, yes: true}
			cmd := newRenameCommand()
			applyRenameDefaults(&renameOpts, cfg, cmd)
			return runRename(cfg, renameOpts)
		}
	}
	return nil
}

// ensureToken resolves the personal access token from the environment or an
// interactive prompt. Returns "" when the operator quits.
func ensureToken(c *console.Console) string {
	if token := os.Getenv(bexio.TokenEnvVar); token != "" {
		return token
	}

	const url = "https://developer.bexio.com/pat"
	c.Rule()
	c.Warnf("KEIN TOKEN GEFUNDEN. ANLEITUNG:")
	c.Rule()
	c.Printf("  1. Gehe zu: %s\n", url)
	c.Printf("  2. Melde dich mit deinen Bexio-Zugangsdaten an.\n")
	c.Printf("  3. Klicke auf 'Generate Token'.\n")
	c.Printf("  4. Vergib dem Token einen Namen (z. B. 'Downloader') und wähle die Firma aus.\n")
	c.Printf("  5. Kopiere die generierte Token-Zeichenfolge.\n")
	c.Printf("\n  (Hinweis: PATs haben dieselben Rechte wie dein Benutzer. Bewahre sie geheim auf!)\n")
	c.Rule()

	if c.Confirm("\n  Soll " + url + " im Browser geöffnet werden?") {
		c.Printf("  Öffne %s im Browser...\n", url)
		desktop.OpenURL(url)
	}
	c.Printf("\n")

	for {
		token := c.Prompt("Bitte gib den Personal Access Token ein [oder 'q' zum Beenden]: ")
		if console.IsQuit(token) || c.EOF() {
			return ""
		}
		if token != "" {
			return token
		}
		c.Warnf("Bitte gib einen gültigen Token ein oder 'q' zum Beenden.")
	}
}

// buildQuery translates flags, or the interactive menu when no mode flag is
// set, into an API query. ok is false when the operator quits.
func buildQuery(c *console.Console, opts downloadOptions) (query bexio.Query, ok bool) {
	switch {
	case opts.name != "":
		query.Terms = []bexio.SearchTerm{bexio.NameLike(opts.name)}
	case len(opts.dateRange) == 2:
		start, end, err := parseDateRange(opts.dateRange[0], opts.dateRange[1])
		if err != nil {
			c.Errorf("%v", err)
			return query, false
		}
		query.Terms = []bexio.SearchTerm{bexio.CreatedSince(start), bexio.CreatedUntil(end)}
	case opts.since != "":
		start, err := parseDate(opts.since)
		if err != nil {
			c.Errorf("%v", err)
			return query, false
		}
		query.Terms = []bexio.SearchTerm{bexio.CreatedSince(start)}
	case opts.days > 0:
		query.Terms = []bexio.SearchTerm{bexio.CreatedSince(daysAgo(opts.days))}
	case opts.latest > 0:
		query.Limit = opts.latest
		query.OrderBy = "id_desc"
	case opts.all:
		query.ArchivedState = "all"
	case opts.notArchived:
		query.ArchivedState = "not_archived"
	case opts.inbox:
		// API default listing is the inbox.
	default:
		return interactiveQuery(c)
	}
	return query, true
}

func interactiveQuery(c *console.Console) (query bexio.Query, ok bool) {
	c.Rule()
	c.Title("DOWNLOAD-OPTIONEN")
	c.Rule()

	choice := c.Menu(
		"Alle Dateien herunterladen (inkl. Archiv)",
		"Nur Inbox herunterladen (nicht archiviert)",
		"Nur archivierte Dateien herunterladen",
		"Dateien seit Datum...",
		"Dateien aus den letzten X Tagen...",
		"Die letzten X Dateien...",
		"Dateien in Zeitraum...",
		"Dateien nach Name suchen...",
	)

	switch choice {
	case 0:
		return query, false
	case 1:
		query.ArchivedState = "all"
		return query, true
	case 2:
		query.ArchivedState = "not_archived"
		return query, true
	case 3:
		query.ArchivedState = "archived"
		return query, true
	case 4:
		start, err := parseDate(c.Prompt("  Datum (JJJJ-MM-TT): "))
		if err != nil {
			c.Errorf("%v", err)
			return query, false
		}
		query.Terms = append(query.Terms, bexio.CreatedSince(start))
	case 5:
		days, err := strconv.Atoi(c.Prompt("  Anzahl Tage: "))
		if err != nil || days <= 0 {
			c.Errorf("Ungültige Eingabe. Bitte eine Zahl eingeben.")
			return query, false
		}
		query.Terms = append(query.Terms, bexio.CreatedSince(daysAgo(days)))
	case 6:
		count, err := strconv.Atoi(c.Prompt("  Anzahl Dateien: "))
		if err != nil || count <= 0 {
			c.Errorf("Ungültige Eingabe. Bitte eine Zahl eingeben.")
			return query, false
		}
		query.Limit = count
		query.OrderBy = "id_desc"
		// The plain listing endpoint only filters by archive status.
		query.ArchivedState = askArchiveStatus(c)
		return query, true
	case 7:
		start, end, err := parseDateRange(
			c.Prompt("  Start-Datum (JJJJ-MM-TT): "),
			c.Prompt("  End-Datum (JJJJ-MM-TT): "),
		)
		if err != nil {
			c.Errorf("%v", err)
			return query, false
		}
		query.Terms = append(query.Terms, bexio.CreatedSince(start), bexio.CreatedUntil(end))
	case 8:
		name := c.Prompt("  Dateiname (oder Teil davon): ")
		if name == "" {
			c.Errorf("Kein Suchbegriff eingegeben.")
			return query, false
		}
		query.Terms = append(query.Terms, bexio.NameLike(name))
	}

	query.ArchivedState = askArchiveStatus(c)
	if term, filter := askReferencedStatus(c); filter {
		query.Terms = append(query.Terms, term)
	}
	return query, true
}

func askArchiveStatus(c *console.Console) string {
	c.Printf("\n  Welchen Archiv-Status sollen die durchsuchten Dateien haben?\n")
	switch c.Menu(
		"Alle (inkl. archivierte) [Standard]",
		"Nur aus der Inbox (nicht archiviert)",
		"Nur archivierte",
	) {
	case 2:
		return "not_archived"
	case 3:
		return "archived"
	default:
		return "all"
	}
}

func askReferencedStatus(c *console.Console) (bexio.SearchTerm, bool) {
	c.Printf("\n  Sollen alle oder nur mit Belegen verknüpfte Dateien berücksichtigt werden?\n")
	switch c.Menu(
		"Alle Dateien (egal ob verknüpft oder nicht) [Standard]",
		"Nur verknüpfte Dateien",
		"Nur NICHT verknüpfte Dateien",
	) {
	case 2:
		return bexio.Referenced(true), true
	case 3:
		return bexio.Referenced(false), true
	default:
		return bexio.SearchTerm{}, false
	}
}

func parseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("ungültiges Datumsformat %q, bitte JJJJ-MM-TT verwenden", input)
	}
	return t, nil
}

func parseDateRange(startInput, endInput string) (start, end time.Time, err error) {
	start, err = parseDate(startInput)
	if err != nil {
		return
	}
	end, err = parseDate(endInput)
	if err != nil {
		return
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return
}

func daysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)
}
