package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/yeqown/ordtree/bench"
)

var _ bench.Logger = (*zeroLogger)(nil)

// zeroLogger feeds runner progress into zerolog at info level.
type zeroLogger struct {
	log zerolog.Logger
}

func newLogger(w io.Writer, level string) (*zeroLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
	return &zeroLogger{log: l}, nil
}

func (z *zeroLogger) Log(format string, args ...interface{}) {
	z.log.Info().Msgf(format, args...)
}
