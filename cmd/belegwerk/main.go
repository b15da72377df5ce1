package main

import (
	"os"

	"github.com/belegwerk-dev/belegwerk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
