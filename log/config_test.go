package log

import (
	"io"
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" Info ", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"error+2", Level(10)},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_String_RoundTrip(t *testing.T) {
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"json", "text"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestConfig_Options(t *testing.T) {
	c := makeConfig(nil,
		WithLevel(LevelWarn),
		WithFormat(FormatText),
		WithCaller(true),
		WithPretty(false),
	)

	if c.output != io.Discard {
		t.Errorf("nil writer should become io.Discard")
	}

	if c.level != LevelWarn {
		t.Errorf("level = %v, want %v", c.level, LevelWarn)
	}

	if c.format != FormatText {
		t.Errorf("format = %v, want %v", c.format, FormatText)
	}

	if !c.caller {
		t.Errorf("caller should be enabled")
	}

	if c.pretty {
		t.Errorf("pretty should be disabled")
	}
}

func TestConfig_WithTimeLayout(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T15:04:05Z"},
		{"rfc-3339", "2024-03-09T15:04:05Z"},
		{"Kitchen", "3:04PM"},
		{"DateTime", "2024-03-09 15:04:05"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			if got := c.formatTime(ts); got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLevel_Text(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "Trace", want: LevelTrace},
		{in: "warn-1", want: Level(3)},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var l Level

			err := l.UnmarshalText([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if l != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, l, tt.want)
			}

			text, _ := l.MarshalText()
			if got := ParseLevel(string(text)); got != l {
				t.Errorf("ParseLevel(%q) = %v, want %v", text, got, l)
			}
		})
	}
}

func TestFormat_Text(t *testing.T) {
	var f Format

	if err := f.UnmarshalText([]byte(" Text ")); err != nil || f != FormatText {
		t.Errorf("UnmarshalText(text) = %v, %v", f, err)
	}

	if err := f.UnmarshalText([]byte("yaml")); err == nil {
		t.Errorf("UnmarshalText(yaml) should fail")
	}

	if text, _ := FormatJSON.MarshalText(); string(text) != "json" {
		t.Errorf("MarshalText = %q", text)
	}
}
