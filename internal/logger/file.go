package logger

import (
	"fmt"
	"os"
)

// File prints like Console and additionally writes every line to a file,
// regardless of verbosity.
//
// The file is created or truncated by NewFile and owned by the logger until
// Close. Lines reach the operating system as soon as they are printed; there
// is no user-space buffering.
type File struct {
	formatter
	console *Console
	path    string
	file    *os.File
}

// NewFile creates or truncates the file at path and returns a logger writing
// to it.
func NewFile(path string, verbose bool, opts ...Option) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	console := NewConsole(verbose, opts...)
	l := &File{console: console, path: path, file: f}
	l.formatter = formatter{sink: l, ruleChar: console.ruleChar, width: console.width}
	return l, nil
}

// Path returns the log file path.
func (l *File) Path() string {
	return l.path
}

// Verbose reports whether console output is emitted.
func (l *File) Verbose() bool {
	return l.console.Verbose()
}

// SetVerbose turns console output on or off. File output is unaffected.
func (l *File) SetVerbose(verbose bool) {
	l.console.SetVerbose(verbose)
}

func (l *File) writeLine(line string) error {
	if l.file == nil {
		return ErrClosed
	}
	if err := l.console.writeLine(line); err != nil {
		return err
	}
	if _, err := l.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

// Close releases the log file. Printing afterwards returns ErrClosed, and so
// does a second Close.
func (l *File) Close() error {
	if l.file == nil {
		return ErrClosed
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

var (
	_ Printer = (*Console)(nil)
	_ Printer = (*File)(nil)
)
