package core

import "fmt"

// Logger is the sink for render progress and summaries
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger writes log lines to standard output
type StdoutLogger struct{}

// Printf implements Logger
func (StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}
