package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-raytracer/pkg/core"
)

// NewDefaultLogger creates a logger that writes to stdout
func NewDefaultLogger() core.Logger {
	return core.StdoutLogger{}
}

// NewNopLogger creates a logger that discards output
func NewNopLogger() core.Logger {
	return core.NopLogger{}
}

// WriterLogger writes log lines to an io.Writer
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

// Printf implements core.Logger
func (l *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}
