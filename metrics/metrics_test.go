package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ardnew/mfmt/lru"
)

func TestCacheCollector(t *testing.T) {
	cache := lru.New[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	cache.Get("c")
	cache.Get("a")

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(NewCacheCollector("mfmt", cache.Stats,
		prometheus.Labels{"cache": "parse"}))

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{
		"mfmt_cache_hits_total":      1,
		"mfmt_cache_misses_total":    1,
		"mfmt_cache_evictions_total": 1,
		"mfmt_cache_entries":         2,
		"mfmt_cache_capacity":        2,
	}

	got := map[string]float64{}

	for _, mf := range families {
		if len(mf.GetMetric()) != 1 {
			t.Fatalf("%s: %d metrics, want 1", mf.GetName(), len(mf.GetMetric()))
		}

		m := mf.GetMetric()[0]

		if l := m.GetLabel(); len(l) != 1 || l[0].GetName() != "cache" || l[0].GetValue() != "parse" {
			t.Errorf("%s: labels = %v", mf.GetName(), l)
		}

		switch {
		case m.GetCounter() != nil:
			got[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			got[mf.GetName()] = m.GetGauge().GetValue()
		}
	}

	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}

	if len(got) != len(want) {
		t.Errorf("got %d metric families, want %d", len(got), len(want))
	}
}

func TestCacheCollector_ReadsOnScrape(t *testing.T) {
	cache := lru.New[string](4)

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCacheCollector("", cache.Stats, nil))

	cache.Put("k", "v")

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	for _, mf := range families {
		if mf.GetName() == "cache_entries" && mf.GetMetric()[0].GetGauge().GetValue() != 1 {
			t.Errorf("cache_entries = %v, want 1", mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}
