package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mfmt/log"
)

// logFormat and logLevel reconfigure the default logger as kong decodes
// them, so parse errors are already reported in the requested form.
type (
	logFormat string
	logLevel  string
)

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                     help:"Set timestamp format; 'none' omits it."`
	Caller     bool      `default:"false"                                       help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                        help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start configures the default logger from the parsed flags.
func (f *logConfig) start(ctx context.Context, w io.Writer) {
	log.Config(
		log.WithOutput(w),
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies the logging flags in args to the default logger before kong
// parses them. Only "--" ends the scan; other arguments are skipped.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args) && args[i] != "--"; i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		name, negated := strings.CutPrefix(name, "--no-log-")
		if !negated {
			var ok bool
			if name, ok = strings.CutPrefix(name, "--log-"); !ok {
				continue
			}
		}

		if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") &&
			name != "pretty" && name != "caller" {
			i++
			value = args[i]
		}

		f.apply(name, value, assigned, negated)
	}
}

// apply sets the flag called name. Boolean flags given without a value are
// true, or false when negated.
func (f *logConfig) apply(name, value string, assigned, negated bool) {
	boolean := func(set func(bool)) {
		v := true
		if assigned {
			var err error
			if v, err = strconv.ParseBool(value); err != nil {
				return
			}
		}

		set(v != negated)
	}

	switch name {
	case "level":
		_ = f.Level.UnmarshalText([]byte(value))
	case "format":
		_ = f.Format.UnmarshalText([]byte(value))
	case "time-layout":
		f.TimeLayout = value
		log.Config(log.WithTimeLayout(value))
	case "pretty":
		boolean(func(v bool) {
			f.Pretty = v
			log.Config(log.WithPretty(v))
		})
	case "caller":
		boolean(func(v bool) {
			f.Caller = v
			log.Config(log.WithCaller(v))
		})
	}
}
