package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/belegwerk-dev/belegwerk/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "belegwerk",
		Short:   "Bexio-Dokumente herunterladen und mit Gemini AI umbenennen",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newDownloadCommand())

	return rootCmd
}
