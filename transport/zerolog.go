package transport

import (
	"github.com/rs/zerolog"

	"github.com/kbukum/catlog/record"
)

// Zerolog forwards records to a zerolog.Logger, so catlog output can join
// an existing zerolog pipeline. The record's own time, category and id are
// kept; zerolog's level filter still applies on top of catlog's.
type Zerolog struct {
	zl zerolog.Logger
}

// NewZerolog creates a transport that writes to zl.
func NewZerolog(zl zerolog.Logger) *Zerolog {
	return &Zerolog{zl: zl}
}

func (z *Zerolog) Write(rec record.Record) error {
	ev := z.zl.WithLevel(zerologLevel(rec.Severity()))
	if ev == nil {
		return nil
	}
	ev = ev.Time(zerolog.TimestampFieldName, rec.Time()).
		Str("category", rec.Category().String())
	if id := rec.ID(); id != "" {
		ev = ev.Str("id", id)
	}
	if rec.HasData() {
		ev = ev.Interface("data", rec.Data())
	}
	if e := rec.Error(); e != nil {
		ev = ev.Str(zerolog.ErrorFieldName, e.Message).Str("error_name", e.Name)
		if e.Stack != "" {
			ev = ev.Str(zerolog.ErrorStackFieldName, e.Stack)
		}
	}
	ev.Msg(rec.Message())
	return nil
}

func zerologLevel(sev record.Severity) zerolog.Level {
	switch sev {
	case record.Debug:
		return zerolog.DebugLevel
	case record.Warn:
		return zerolog.WarnLevel
	case record.Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
