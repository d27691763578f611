package profile

import (
	"slices"
	"testing"
)

func TestConfig_StartDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty mode", Config{}},
		{"unknown mode", Config{Mode: "bogus", Path: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.cfg.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if Enabled != (len(modes) > 0) {
		t.Errorf("Enabled = %v with %d modes", Enabled, len(modes))
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}
}

func TestConfig_Dir(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{}, ""},
		{Config{Label: "serve"}, ""},
		{Config{Path: "/tmp/p"}, "/tmp/p"},
		{Config{Path: "/tmp/p", Label: "serve"}, "/tmp/p/serve"},
	}

	for _, tt := range tests {
		if got := tt.cfg.dir(); got != tt.want {
			t.Errorf("%+v.dir() = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
