package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type Options struct {
	Verbosity int
	// Level overrides the level derived from Verbosity when it names a
	// known level.
	Level     string
	Timestamp bool
	NoColor   bool
}

// New returns a console logger writing to w. Colors are only used when w is
// a terminal.
func New(w io.Writer, opts Options) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor || !isTerminal(w),
		TimeFormat: time.RFC3339,
	}
	if !opts.Timestamp {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	level := LevelForVerbosity(opts.Verbosity)
	if lvl, ok := parseLevel(opts.Level); ok {
		level = lvl
	}
	ctx := zerolog.New(cw).Level(level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// LevelForVerbosity maps the number of -v flags to a level.
func LevelForVerbosity(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.WarnLevel
	case v == 1:
		return zerolog.InfoLevel
	case v == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.NoLevel, false
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	case "warning":
		return zerolog.WarnLevel, true
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return zerolog.NoLevel, false
	}
	return lvl, true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
