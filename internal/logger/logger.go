// Package logger prints human-readable progress output to the console and,
// optionally, to a log file.
//
// Two implementations satisfy Printer. Console writes to an io.Writer when
// verbose. File does the same and also writes every line to a file it owns,
// whether verbose or not. Both share the section, title and dictionary
// layouts, which are written once over a line sink.
//
// Loggers are not safe for concurrent use.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"
)

// Default rule used by PrintSectionHeader and PrintTitle.
const (
	DefaultRuleChar  = "="
	DefaultRuleWidth = 60
)

// ErrClosed is returned when printing through a closed File logger.
var ErrClosed = errors.New("logger closed")

// Printer is the printing capability shared by Console and File.
type Printer interface {
	// Print writes the arguments, formatted with fmt.Sprint and separated by
	// single spaces, as one line.
	Print(args ...any) error

	// PrintSectionHeader writes a blank line, a rule, the title, a rule and
	// a blank line.
	PrintSectionHeader(title string) error

	// PrintTitle writes a blank line, the title framed by rule characters
	// and a blank line.
	PrintTitle(title string) error

	// PrintDict writes one "> key: value" line per entry in sorted key
	// order, then a blank line.
	PrintDict(m map[string]any) error

	// PrintFields is PrintDict in the given order.
	PrintFields(fields ...Field) error
}

// Field is a key/value pair for PrintFields.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Console or File logger.
type Option func(*options)

type options struct {
	out      io.Writer
	ruleChar string
	width    int
}

func defaultOptions() options {
	return options{
		out:      os.Stdout,
		ruleChar: DefaultRuleChar,
		width:    DefaultRuleWidth,
	}
}

// WithWriter sends console output to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithRule changes the rule character and width of headers and titles.
func WithRule(char string, width int) Option {
	return func(o *options) {
		o.ruleChar = char
		o.width = width
	}
}

// lineSink receives complete lines without a trailing newline.
type lineSink interface {
	writeLine(line string) error
}

// formatter lays out headers, titles and dictionaries over a lineSink.
type formatter struct {
	sink     lineSink
	ruleChar string
	width    int
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}

func (f formatter) Print(args ...any) error {
	return f.sink.writeLine(joinArgs(args))
}

func (f formatter) lines(lines ...string) error {
	for _, line := range lines {
		if err := f.sink.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (f formatter) PrintSectionHeader(title string) error {
	rule := strings.Repeat(f.ruleChar, f.width)
	return f.lines("", rule, title, rule, "")
}

func (f formatter) PrintTitle(title string) error {
	pad := max(3, f.width-utf8.RuneCountInString(title)-5)
	framed := joinArgs([]any{strings.Repeat(f.ruleChar, 3), title, strings.Repeat(f.ruleChar, pad)})
	return f.lines("", framed, "")
}

func (f formatter) PrintDict(m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = F(k, m[k])
	}
	return f.PrintFields(fields...)
}

func (f formatter) PrintFields(fields ...Field) error {
	for _, field := range fields {
		if err := f.sink.writeLine(fmt.Sprintf("> %s: %v", field.Key, field.Value)); err != nil {
			return err
		}
	}
	return f.sink.writeLine("")
}
