package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// candidate returns filename with a numeric suffix before the extension.
// candidate("a.pdf", 0) == "a.pdf", candidate("a.pdf", 2) == "a_2.pdf".
func candidate(filename string, n int) string {
	if n == 0 {
		return filename
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// UniquePath returns a path in dir that does not exist at call time, appending
// _1, _2, ... before the extension until an unused name is found. Callers that
// race against other writers must claim the path with CreateExclusive instead.
func UniquePath(dir, filename string) string {
	for n := 0; ; n++ {
		path := filepath.Join(dir, candidate(filename, n))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}

// CreateExclusive atomically claims a collision-free path in dir: the file is
// created with O_EXCL, and on collision the numeric suffix is incremented and
// the create retried. Safe against concurrent claimers of the same directory.
// The caller owns the returned open file.
func CreateExclusive(dir, filename string) (*os.File, error) {
	for n := 0; ; n++ {
		path := filepath.Join(dir, candidate(filename, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
	}
}
