package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belegwerk-dev/belegwerk/internal/config"
)

func TestApplyRenameDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Limit = 7
	cmd := newRenameCommand()

	opts := renameOptions{}
	applyRenameDefaults(&opts, cfg, cmd)

	assert.Equal(t, "gemini-2.5-flash", opts.model)
	assert.Equal(t, 4, opts.concurrency)
	assert.Equal(t, 7, opts.limit)
	assert.Equal(t, "downloads", opts.inputDir)
	assert.Equal(t, "benannt", opts.outDir)
	assert.Equal(t, "verarbeitet", opts.archiveDir)
	assert.Equal(t, "logs", opts.logDir)
}

func TestApplyRenameDefaultsKeepsFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Limit = 7
	cmd := newRenameCommand()
	require.NoError(t, cmd.Flags().Set("limit", "3"))

	opts := renameOptions{model: "gemini-2.5-pro", concurrency: 8, limit: 3, inputDir: "scans"}
	applyRenameDefaults(&opts, cfg, cmd)

	assert.Equal(t, "gemini-2.5-pro", opts.model)
	assert.Equal(t, 8, opts.concurrency)
	assert.Equal(t, 3, opts.limit)
	assert.Equal(t, "scans", opts.inputDir)
	assert.Equal(t, "benannt", opts.outDir)
}

func TestConfigureDirectories(t *testing.T) {
	c := testConsole("eingang\n\narchiv\n\n")
	opts := renameOptions{inputDir: "downloads", outDir: "benannt", archiveDir: "verarbeitet", logDir: "logs"}

	require.True(t, configureDirectories(c, &opts))
	assert.Equal(t, "eingang", opts.inputDir)
	assert.Equal(t, "benannt", opts.outDir)
	assert.Equal(t, "archiv", opts.archiveDir)
	assert.Equal(t, "logs", opts.logDir)
}

func TestConfigureDirectoriesQuit(t *testing.T) {
	c := testConsole("q\n")
	opts := renameOptions{inputDir: "downloads"}

	assert.False(t, configureDirectories(c, &opts))
}

func TestConfigureProcessing(t *testing.T) {
	c := testConsole("10\nviele\ngemini-2.5-pro\n")
	opts := renameOptions{limit: 0, concurrency: 4, model: "gemini-2.5-flash"}

	require.True(t, configureProcessing(c, &opts))
	assert.Equal(t, 10, opts.limit)
	// Malformed numbers keep the previous value.
	assert.Equal(t, 4, opts.concurrency)
	assert.Equal(t, "gemini-2.5-pro", opts.model)
}
