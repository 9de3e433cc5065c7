package log

import (
	"fmt"
	"io"
)

// Logger is the sink for the progress output a compilation run emits.
// Runs log through the nop implementation unless a caller installs a real
// one.
type Logger interface {
	Log(format string, a ...interface{})
}

var (
	_ Logger = &logger{}
	_ Logger = &nopLogger{}
)

type logger struct {
	w io.Writer
}

// NewLogger returns a Logger that writes each message to w, one line per
// Log call.
func NewLogger(w io.Writer) (*logger, error) {
	if w == nil {
		return nil, fmt.Errorf("NewLogger needs a writer")
	}
	return &logger{
		w: w,
	}, nil
}

func (l *logger) Log(format string, a ...interface{}) {
	fmt.Fprintf(l.w, format+"\n", a...)
}

type nopLogger struct {
}

// NewNopLogger returns a Logger that discards everything logged to it.
func NewNopLogger() *nopLogger {
	return &nopLogger{}
}

func (l *nopLogger) Log(format string, a ...interface{}) {
}
