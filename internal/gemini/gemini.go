// Package gemini wraps the external Gemini CLI used for document
// classification. The call is synchronous and has no timeout: a hung CLI
// process stalls its worker until the operator interrupts the run.
package gemini

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// noiseMarker identifies client chatter lines that must not reach the parser.
const noiseMarker = "IDEClient"

// ErrNotInstalled is returned when neither the gemini CLI nor npx is found.
var ErrNotInstalled = errors.New("weder 'gemini' noch 'npx' wurde gefunden")

// Runner runs one classification call and returns the filtered transcript.
// dir is the working directory for the call, so the tool can resolve the
// @filename reference in the prompt.
type Runner interface {
	Run(dir, prompt string) (string, error)
}

// CLI invokes the Gemini command-line tool as a subprocess, feeding the
// prompt on stdin and collecting stdout.
type CLI struct {
	Command      []string // resolved base command, e.g. ["gemini"] or ["npx", "gemini-chat-cli"]
	Model        string
	DisableMCP   bool // pass a sentinel disallowed server name to switch MCP off
	AllowIgnored bool // let the tool read files hidden by ignore rules
}

// ResolveCommand locates the Gemini CLI: the gemini binary when installed,
// otherwise gemini-chat-cli via npx.
func ResolveCommand() ([]string, error) {
	if _, err := exec.LookPath("gemini"); err == nil {
		return []string{"gemini"}, nil
	}
	if _, err := exec.LookPath("npx"); err == nil {
		return []string{"npx", "gemini-chat-cli"}, nil
	}
	return nil, ErrNotInstalled
}

// Run executes one classification call.
func (c *CLI) Run(dir, prompt string) (string, error) {
	args := append([]string{}, c.Command[1:]...)
	args = append(args, "--model", c.Model)
	if c.DisableMCP {
		args = append(args, "--allowed-mcp-server-names", "__DISABLED__")
	}

	cmd := exec.Command(c.Command[0], args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(prompt)

	if c.AllowIgnored {
		cmd.Env = append(os.Environ(),
			"MODEL_CONTEXT_ALLOW_IGNORED_FILES=1",
			"MODEL_CONTEXT_DISABLE_GITIGNORE=1",
		)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %s: %w", c.Command[0], strings.TrimSpace(stderr.String()), err)
	}
	return FilterOutput(stdout.String()), nil
}

// FilterOutput drops known noise lines from CLI output.
func FilterOutput(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(line, noiseMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
