package logger

import (
	"fmt"
	"io"
)

// Console prints to a writer, standard output by default, when verbose.
type Console struct {
	formatter
	out     io.Writer
	verbose bool
}

// NewConsole creates a console logger. A non-verbose console discards
// everything.
func NewConsole(verbose bool, opts ...Option) *Console {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Console{out: o.out, verbose: verbose}
	c.formatter = formatter{sink: c, ruleChar: o.ruleChar, width: o.width}
	return c
}

// Verbose reports whether output is emitted.
func (c *Console) Verbose() bool {
	return c.verbose
}

// SetVerbose turns output on or off.
func (c *Console) SetVerbose(verbose bool) {
	c.verbose = verbose
}

func (c *Console) writeLine(line string) error {
	if !c.verbose {
		return nil
	}
	if _, err := fmt.Fprintln(c.out, line); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}
