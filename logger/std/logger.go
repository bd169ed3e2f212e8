package std

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pwnedgod/interop/logger"
)

type stdLogger struct {
	out    io.Writer
	errOut io.Writer
	debug  bool
}

func NewLogger() logger.Logger {
	return &stdLogger{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// NewLoggerWithWriters returns a logger writing info and debug entries to out
// and errors to errOut. Debug entries are dropped unless debug is set.
func NewLoggerWithWriters(out io.Writer, errOut io.Writer, debug bool) logger.Logger {
	return &stdLogger{
		out:    out,
		errOut: errOut,
		debug:  debug,
	}
}

func (l stdLogger) Info(msg string, fields ...logger.Field) {
	fmt.Fprintln(l.out, format("info", msg, fields))
}

func (l stdLogger) Debug(msg string, fields ...logger.Field) {
	if !l.debug {
		return
	}
	fmt.Fprintln(l.out, format("debug", msg, fields))
}

func (l stdLogger) Error(msg string, fields ...logger.Field) {
	fmt.Fprintln(l.errOut, format("error", msg, fields))
}

func format(level string, msg string, fields []logger.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "level=%s msg=%q", level, msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
