package log

import (
	"fmt"
	"iter"
	"strings"
)

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota // key=value pairs, optionally colorized
	FormatJSON               // one JSON object per line
)

// DefaultFormat is the format of a Logger made without [WithFormat].
const DefaultFormat = FormatJSON

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}

	return "json"
}

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	switch s := strings.TrimSpace(string(text)); {
	case strings.EqualFold(s, FormatText.String()):
		*f = FormatText
	case strings.EqualFold(s, FormatJSON.String()):
		*f = FormatJSON
	default:
		return fmt.Errorf("log format: unknown name %q", s)
	}

	return nil
}

// ParseFormat parses "json" or "text", ignoring case. Unrecognized strings
// yield [DefaultFormat].
func ParseFormat(s string) Format {
	var f Format
	if err := f.UnmarshalText([]byte(s)); err != nil {
		return DefaultFormat
	}

	return f
}

// Formats returns the names of the defined formats, default first.
func Formats() iter.Seq[string] {
	return names(FormatJSON, FormatText)
}
