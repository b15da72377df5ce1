package naming

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestUniquePath_NoCollision(t *testing.T) {
	dir := t.TempDir()
	got := UniquePath(dir, "a.pdf")
	assert.Equal(t, filepath.Join(dir, "a.pdf"), got)
}

func TestUniquePath_Suffixes(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pdf"))
	touch(t, filepath.Join(dir, "a_1.pdf"))

	got := UniquePath(dir, "a.pdf")
	assert.Equal(t, filepath.Join(dir, "a_2.pdf"), got)
}

func TestUniquePath_NoExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "README"))

	got := UniquePath(dir, "README")
	assert.Equal(t, filepath.Join(dir, "README_1"), got)
}

func TestCreateExclusive_ClaimsNextFree(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pdf"))

	f, err := CreateExclusive(dir, "a.pdf")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, "a_1.pdf"), f.Name())
}

func TestCreateExclusive_ConcurrentClaimersNeverCollide(t *testing.T) {
	dir := t.TempDir()
	const claimers = 20

	paths := make(chan string, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := CreateExclusive(dir, "doc.pdf")
			if assert.NoError(t, err) {
				paths <- f.Name()
				f.Close()
			}
		}()
	}
	wg.Wait()
	close(paths)

	seen := make(map[string]bool)
	for p := range paths {
		assert.False(t, seen[p], "path %s claimed twice", p)
		seen[p] = true
	}
	assert.Len(t, seen, claimers)
}
