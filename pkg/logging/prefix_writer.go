package logging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/buildpacks/stager/internal/style"
)

// PrefixWriter tags every line of a stage's container output with the stage name.
// Incomplete lines are held back until their line feed arrives or Close is called.
type PrefixWriter struct {
	out     io.Writer
	prefix  []byte
	pending []byte
}

func NewPrefixWriter(w io.Writer, stage string) *PrefixWriter {
	return &PrefixWriter{
		out:    w,
		prefix: []byte(fmt.Sprintf("[%s] ", style.Prefix(stage))),
	}
}

func (w *PrefixWriter) Write(data []byte) (int, error) {
	w.pending = append(w.pending, data...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(w.pending[:i], []byte{'\r'})
		if err := w.emit(line, true); err != nil {
			return 0, err
		}
		w.pending = w.pending[i+1:]
	}

	// reclaim the consumed prefix of the buffer
	if len(w.pending) == 0 {
		w.pending = nil
	}
	return len(data), nil
}

// Close writes out a trailing line that never got its line feed.
func (w *PrefixWriter) Close() error {
	if len(w.pending) == 0 {
		return nil
	}
	line := bytes.TrimSuffix(w.pending, []byte{'\r'})
	w.pending = nil
	return w.emit(line, false)
}

func (w *PrefixWriter) emit(line []byte, newline bool) error {
	buf := make([]byte, 0, len(w.prefix)+len(line)+1)
	buf = append(buf, w.prefix...)
	buf = append(buf, line...)
	if newline {
		buf = append(buf, '\n')
	}
	_, err := w.out.Write(buf)
	return err
}
