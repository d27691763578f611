package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveYAML(t *testing.T) {
	doc := `
log-level: debug
log:
  format: text
  pretty: false
cache_size: 4096
ratio: 0.5
items: [1, two]
`

	resolver, err := resolveYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolveYAML: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-pretty", false},
		{"cache-size", "4096"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := resolver.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	items, _ := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "items"}})
	if got, ok := items.([]any); !ok || !slices.Equal(got, []any{"1", "two"}) {
		t.Errorf("items = %#v, want [1 two]", items)
	}
}

func TestResolveYAML_Empty(t *testing.T) {
	resolver, err := resolveYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolveYAML: %v", err)
	}

	got, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	if err != nil || got != nil {
		t.Errorf("Resolve = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestResolveYAML_Invalid(t *testing.T) {
	if _, err := resolveYAML(strings.NewReader("log-level: [unterminated")); err == nil {
		t.Error("resolveYAML accepted invalid YAML")
	}
}
