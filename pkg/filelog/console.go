package filelog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// console echoes raw messages to a writer, coloured by severity.
//
// Colours are ANSI sequences, so the "default foreground colour" captured at
// construction is whatever the terminal shows without any attribute set.
// Every coloured write is wrapped in set/reset so the colour never leaks into
// unrelated output, and the whole sequence runs under mu.
type console struct {
	out    io.Writer
	colors map[Severity]*color.Color
	mu     sync.Mutex
}

func newConsole(out io.Writer, useColor bool) *console {
	c := &console{
		out:    out,
		colors: make(map[Severity]*color.Color),
	}
	for _, s := range Severities() {
		attrs := s.colorAttributes()
		if len(attrs) == 0 {
			continue
		}
		col := color.New(attrs...)
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
		c.colors[s] = col
	}
	return c
}

// print writes message followed by a newline. Console failures are returned
// but never affect the file log.
func (c *console) print(s Severity, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if col, ok := c.colors[s]; ok {
		_, err := col.Fprintln(c.out, message)
		return err
	}
	_, err := fmt.Fprintln(c.out, message)
	return err
}

// isTTY returns true if the given writer is a terminal.
func isTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// supportsColor reports whether ANSI colours should be written to w. It
// returns false when NO_COLOR is set, TERM is "dumb" or w is not a terminal.
func supportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(w)
}
