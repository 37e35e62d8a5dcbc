package notelog

import (
	"io"
	"log/slog"
	"time"
)

// DefaultPath is the document path used when WithPath is not given.
const DefaultPath = "z.log.json"

type Option func(*Log)

// WithPath sets the document path.
func WithPath(p string) Option {
	return func(l *Log) { l.path = p }
}

// WithVerbose makes update and patch narratives include the new values.
func WithVerbose(v bool) Option {
	return func(l *Log) { l.verbose = v }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// WithOutput sets where the one line narrative of each operation is
// printed. By default it is discarded.
func WithOutput(w io.Writer) Option {
	return func(l *Log) { l.out = w }
}

// WithClock sets the source of history timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}
