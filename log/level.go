package log

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Level is the severity of a log message: a [slog.Level] extended with
// [LevelTrace] below debug.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a Logger made without [WithLevel].
const DefaultLevel = LevelInfo

// String returns the lower-case level name, with an offset for levels
// between the named ones ("error+2").
func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}

	return strings.ToLower(slog.Level(l).String())
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts the names
// understood by [slog.Level.UnmarshalText] and "trace", ignoring case and
// surrounding space.
func (l *Level) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.EqualFold(s, LevelTrace.String()) {
		*l = LevelTrace

		return nil
	}

	var sl slog.Level
	if err := sl.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	*l = Level(sl)

	return nil
}

// ParseLevel parses a level name such as "trace", "INFO" or "error+2".
// Unrecognized strings yield [DefaultLevel].
func ParseLevel(s string) Level {
	var l Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return l
}

// Levels returns the names of the defined levels, least severe first.
func Levels() iter.Seq[string] {
	return names(LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError)
}

// names yields the String form of each value.
func names[T fmt.Stringer](values ...T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range values {
			if !yield(v.String()) {
				return
			}
		}
	}
}
