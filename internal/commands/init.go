package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/belegwerk-dev/belegwerk/internal/accounts"
	"github.com/belegwerk-dev/belegwerk/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Arbeitsverzeichnis mit Konfiguration und Kontenliste anlegen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Firmenname")

	return cmd
}

func runInit(dir, name string) error {
	cfg := config.Default()
	cfg.CompanyName = name

	// Create directory structure.
	dirs := []string{
		cfg.Directories.Input,
		cfg.Directories.Output,
		cfg.Directories.Archive,
		cfg.Directories.Logs,
		filepath.Join(cfg.Directories.Logs, "gemini_raw"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write config.yaml.
	if err := config.Save(filepath.Join(dir, "config.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts template.
	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(filepath.Join(dir, "accounts.csv")); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	fmt.Printf("Arbeitsverzeichnis angelegt: %s\n", dir)
	return nil
}
