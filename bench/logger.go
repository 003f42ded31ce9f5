package bench

import "log"

var (
	defaultLogger Logger = &stdLogger{}
)

var (
	_ Logger = (*nopLogger)(nil)
	_ Logger = (*stdLogger)(nil)
)

// Logger receives progress messages of a benchmark run.
type Logger interface {
	Log(format string, args ...interface{})
}

type nopLogger struct{}

func (n *nopLogger) Log(format string, args ...interface{}) {}

type stdLogger struct{}

func (s *stdLogger) Log(format string, args ...interface{}) {
	if format[len(format)-1] != '\n' {
		format += "\n"
	}
	log.Printf("BENCH: "+format, args...)
}
