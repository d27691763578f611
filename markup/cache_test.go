package markup

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/mfmt/log"
)

func TestParser_CachesTrees(t *testing.T) {
	p := NewParser()

	first, err := p.Parse(t.Context(), "Hello, [1:{name}]!")
	if err != nil {
		t.Fatal(err)
	}

	second, err := p.Parse(t.Context(), "Hello, [1:{name}]!")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("expected the cached tree to be returned")
	}

	if got := p.Parses(); got != 1 {
		t.Errorf("Parses() = %d, want 1", got)
	}

	stats := p.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	if stats.Capacity != 2048 {
		t.Errorf("default capacity = %d, want 2048", stats.Capacity)
	}
}

func TestParser_FailuresNotCached(t *testing.T) {
	p := NewParser()

	for range 3 {
		if _, err := p.Parse(t.Context(), "[1:"); !errors.Is(err, ErrUnterminatedInput) {
			t.Fatalf("error = %v", err)
		}
	}

	if got := p.Parses(); got != 3 {
		t.Errorf("Parses() = %d, want 3", got)
	}

	if got := p.Stats().Size; got != 0 {
		t.Errorf("cache size = %d, want 0", got)
	}
}

func TestParser_Eviction(t *testing.T) {
	p := NewParser(WithCapacity(2))

	for _, format := range []string{"a", "b", "a", "c"} {
		if _, err := p.Parse(t.Context(), format); err != nil {
			t.Fatal(err)
		}
	}

	// "b" was least recently used when "c" arrived.
	if p.Forget("b") {
		t.Errorf("b should have been evicted")
	}

	if !p.Forget("a") {
		t.Errorf("a should still be cached")
	}

	if got := p.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}

	p.Clear()

	if stats := p.Stats(); stats.Size != 0 || stats.Hits != 0 || stats.Evictions != 0 {
		t.Errorf("Stats() after Clear = %+v", stats)
	}

	if _, err := p.Parse(t.Context(), "c"); err != nil {
		t.Fatal(err)
	}

	if got := p.Parses(); got != 4 {
		t.Errorf("Parses() = %d, want 4", got)
	}
}

func TestParser_Logging(t *testing.T) {
	var buf bytes.Buffer

	p := NewParser(
		WithCapacity(1),
		WithLogger(log.Make(&buf, log.WithLevel(log.LevelTrace))),
	)

	_, _ = p.Parse(t.Context(), "x")
	_, _ = p.Parse(t.Context(), "x")
	_, _ = p.Parse(t.Context(), "y")
	_, _ = p.Parse(t.Context(), "]")

	out := buf.String()
	for _, want := range []string{
		`"cached":false`,
		`"cached":true`,
		`"msg":"evict"`,
		`"msg":"parse failed"`,
		`"error":{"error":"unmatched close bracket"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func BenchmarkParser_Parse(b *testing.B) {
	const format = "Dear [1:{title} {name}], your order [2:#{order}] ships [3:{date}]."

	p := NewParser()

	for b.Loop() {
		if _, err := p.Parse(b.Context(), format); err != nil {
			b.Fatal(err)
		}
	}
}
