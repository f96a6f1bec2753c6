// Package cli provides terminal I/O, output formatting, and command
// dispatch for inspecting and rolling loot tables.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/lootcore/engine"
	"github.com/nathoo/lootcore/engine/loot"
)

// CLI handles plain terminal interaction with the operator.
type CLI struct {
	*Session
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Session: NewSession(eng),
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run lists the loaded tables, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printLines(c.cmdTables())
	c.printLine("")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		lines, quit := c.Exec(input)
		c.printLines(lines)
		if quit {
			return
		}
	}
}

// printLines writes lines with color codes removed.
func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(loot.StripColorCodes(line))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
