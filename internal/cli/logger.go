package cli

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/medprep/internal/model"
	"github.com/rs/zerolog"
)

// newLogger builds the run logger. Every line carries the run id.
func newLogger(cfg model.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writer := out
	if cfg.Format != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
