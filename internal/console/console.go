// Package console plays rounds in a terminal: one submission per line,
// with ":new", ":words" and ":quit" commands.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joomin-choi/wordscramble/internal/game"
)

// Console binds an engine to a line-oriented input and an output.
type Console struct {
	engine *game.Engine
	words  []string
	in     *bufio.Scanner
	out    io.Writer
}

// New constructs a Console that draws root words from list.
func New(engine *game.Engine, list []string, in io.Reader, out io.Writer) *Console {
	return &Console{engine: engine, words: list, in: bufio.NewScanner(in), out: out}
}

// Run starts a round and processes input until EOF or ":quit".
func (c *Console) Run() error {
	c.engine.StartGame(c.words)
	c.printf("WordScramble\n")
	for _, r := range game.Rules {
		c.printf("  - %s\n", r)
	}
	c.banner()

	for c.in.Scan() {
		line := strings.TrimSpace(c.in.Text())
		switch strings.ToLower(line) {
		case ":quit", ":q":
			c.printf("Final score: %d\n", c.engine.Score())
			return nil
		case ":new":
			c.engine.Restart()
			c.banner()
			continue
		case ":words":
			c.listWords()
			continue
		}

		res, ok := c.engine.Submit(line)
		if !ok {
			continue
		}
		if res.Accepted() {
			c.printf("+%d  %s  (score %d)\n", res.Delta, res.Word, c.engine.Score())
			continue
		}
		c.printf("%s: %s\n", res.Title(), res.Message())
	}
	return c.in.Err()
}

func (c *Console) banner() {
	c.printf("\nWord to scramble: %s\nScore: %d\n", c.engine.Root(), c.engine.Score())
}

func (c *Console) listWords() {
	used := c.engine.UsedWords()
	if len(used) == 0 {
		c.printf("No valid answers yet\n")
		return
	}
	for _, w := range used {
		c.printf("  (%d) %s\n", len([]rune(w)), w)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
