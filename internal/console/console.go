// Package console owns the terminal. All workers share a single Console and
// serialize every related block of output and input through Acquire, so two
// concurrent prompts can never interleave.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 70

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Console is the shared operator terminal.
type Console struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New creates a Console reading operator input from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Acquire runs fn with exclusive console access. Output and the input it
// solicits belong in one Acquire block.
func (c *Console) Acquire(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Printf writes formatted output. Call inside Acquire.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Rule prints a horizontal separator line.
func (c *Console) Rule() {
	fmt.Fprintln(c.out, ruleStyle.Render(strings.Repeat("─", ruleWidth)))
}

// Title prints a bold section heading.
func (c *Console) Title(text string) {
	fmt.Fprintln(c.out, titleStyle.Render("  "+text))
}

// Warnf prints a warning line.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintln(c.out, warnStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, errorStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Successf prints a success line.
func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintln(c.out, successStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Prompt asks for one line of input and returns it trimmed. Returns "" once
// the input stream is closed. Call inside Acquire.
func (c *Console) Prompt(label string) string {
	if c.eof {
		return ""
	}
	fmt.Fprint(c.out, promptStyle.Render(label))
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(line)
}

// EOF reports whether operator input is exhausted.
func (c *Console) EOF() bool {
	return c.eof
}

// PromptNonEmpty re-asks until the operator enters a non-empty value, or ""
// when input is exhausted.
func (c *Console) PromptNonEmpty(label string) string {
	for !c.eof {
		if v := c.Prompt(label); v != "" {
			return v
		}
	}
	return ""
}

// Menu prints numbered options and asks for a choice, re-prompting on
// invalid input. Returns the 1-based selection, or 0 when input is
// exhausted.
func (c *Console) Menu(options ...string) int {
	for !c.eof {
		c.Printf("  Optionen:\n")
		for i, opt := range options {
			c.Printf("    [%d] %s\n", i+1, opt)
		}
		choice := c.Prompt("  > ")
		for i := range options {
			if choice == fmt.Sprintf("%d", i+1) {
				return i + 1
			}
		}
		c.Warnf("Ungültige Auswahl.")
	}
	return 0
}

// Confirm asks a yes/no question. Accepts German and English affirmatives.
func (c *Console) Confirm(question string) bool {
	answer := strings.ToLower(c.Prompt(question + " (j/n): "))
	switch answer {
	case "j", "y", "ja", "yes":
		return true
	}
	return false
}

// IsQuit reports whether the operator asked to abort.
func IsQuit(input string) bool {
	switch strings.ToLower(input) {
	case "q", "quit", "exit", "beenden":
		return true
	}
	return false
}
