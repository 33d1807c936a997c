// Package logging defines the minimal interface that loggers must support to be used by stager.
package logging

import (
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

const InvalidFileDescriptor = math.MaxUint32

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger defines behavior required by a logging package used by stager libraries
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

type isSelectableWriter interface {
	WriterForLevel(level Level) io.Writer
}

// GetWriterForLevel retrieves the appropriate Writer for the log level provided.
//
// See isSelectableWriter
func GetWriterForLevel(logger Logger, level Level) io.Writer {
	if er, ok := logger.(isSelectableWriter); ok {
		return er.WriterForLevel(level)
	}

	return logger.Writer()
}

// IsQuiet defines whether a stager logger is set to quiet mode
func IsQuiet(logger Logger) bool {
	if writer := GetWriterForLevel(logger, InfoLevel); writer == io.Discard {
		return true
	}

	return false
}

type hasFd interface {
	Fd() uintptr
}

// IsTerminal returns the file descriptor of w and whether it is a terminal.
func IsTerminal(w io.Writer) (uintptr, bool) {
	switch v := w.(type) {
	case *os.File:
		return v.Fd(), term.IsTerminal(int(v.Fd()))
	case hasFd:
		fd := v.Fd()
		return fd, fd != InvalidFileDescriptor && term.IsTerminal(int(fd))
	}
	return InvalidFileDescriptor, false
}
