// Package transfer carries a processed document from the input directory
// into its final places: a renamed copy in the output directory and the
// original in the archive. Destination paths are claimed with exclusive
// creates, so concurrent workers writing the same directories cannot collide.
package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/belegwerk-dev/belegwerk/internal/desktop"
	"github.com/belegwerk-dev/belegwerk/internal/naming"
)

// Engine performs the copy-then-archive transition.
type Engine struct {
	OutputDir  string
	ArchiveDir string
}

// Process copies src into the output directory under newName and moves the
// original into the archive. If the copy fails, the source file is left
// untouched in the input directory. If the archive move fails after a
// successful copy, the copy is kept and the error reported; the duplicate is
// logged by the caller, not rolled back.
func (e *Engine) Process(src, newName string) (destPath, archivePath string, err error) {
	destPath, err = e.copyToOutput(src, newName)
	if err != nil {
		return "", "", err
	}

	archivePath, err = e.archive(src)
	if err != nil {
		return destPath, "", fmt.Errorf("archiving %s: %w", filepath.Base(src), err)
	}

	// Cross-reference comments, best-effort.
	desktop.SetFinderComment(destPath, filepath.Base(src))
	desktop.SetFinderComment(archivePath, filepath.Base(destPath))

	return destPath, archivePath, nil
}

// copyToOutput claims a collision-free destination and copies src into it,
// preserving the modification time. A failed copy removes the claimed
// destination so no partial file survives.
func (e *Engine) copyToOutput(src, newName string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}

	dest, err := naming.CreateExclusive(e.OutputDir, newName)
	if err != nil {
		return "", fmt.Errorf("claiming destination: %w", err)
	}
	destPath := dest.Name()

	in, err := os.Open(src)
	if err != nil {
		dest.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	if _, err := io.Copy(dest, in); err != nil {
		dest.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("copying to %s: %w", destPath, err)
	}
	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("closing destination: %w", err)
	}

	// Keep the original document date visible in the output folder.
	_ = os.Chtimes(destPath, info.ModTime(), info.ModTime())

	return destPath, nil
}

// archive claims a collision-free path in the archive directory and moves
// the original there. The claimed placeholder is replaced by the rename.
func (e *Engine) archive(src string) (string, error) {
	placeholder, err := naming.CreateExclusive(e.ArchiveDir, filepath.Base(src))
	if err != nil {
		return "", err
	}
	archivePath := placeholder.Name()
	placeholder.Close()

	if err := os.Rename(src, archivePath); err == nil {
		return archivePath, nil
	}

	// Rename can fail across filesystems; fall back to copy and delete.
	if err := copyContents(src, archivePath); err != nil {
		os.Remove(archivePath)
		return "", err
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("removing source after copy: %w", err)
	}
	return archivePath, nil
}

func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening archive file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing archive file: %w", err)
	}

	if info, err := os.Stat(src); err == nil {
		_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	}
	return nil
}
