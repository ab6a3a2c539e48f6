package themelint

import (
	"io"
	"log/slog"
)

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// orNop returns l, or a logger that drops everything when l is nil.
func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nopLogger
	}
	return l
}
