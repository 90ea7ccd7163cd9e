package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/audimeta/geodash/geolib"
)

type logger struct {
	lookupLog zerolog.Logger
}

func (l *logger) LookupError(name string, ip string, err error) {
	l.lookupLog.Warn().Str("resolver", name).Str("ip", ip).Err(err).Msg("")
}

func newLogger() geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
	}
}
