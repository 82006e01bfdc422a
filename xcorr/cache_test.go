package xcorr

import (
	"testing"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

func TestResultCacheGetPut(t *testing.T) {
	c := newResultCache()
	if _, ok := c.get("E1", catalog.P, "E2", "STA1"); ok {
		t.Fatalf("empty cache returned a hit")
	}
	want := Result{CC: 0.91, LagSec: 0.02, Component: "Z"}
	c.put("E1", catalog.P, "E2", "STA1", want)

	got, ok := c.get("E1", catalog.P, "E2", "STA1")
	if !ok || got != want {
		t.Fatalf("get = %+v, %v; want %+v, true", got, ok, want)
	}
	if _, ok := c.get("E1", catalog.S, "E2", "STA1"); ok {
		t.Fatalf("phase type leaked across cache keys")
	}
	if _, ok := c.get("E1", catalog.P, "E2", "STA2"); ok {
		t.Fatalf("station id leaked across cache keys")
	}
}

func TestMemCacheEvictsByByteBudget(t *testing.T) {
	// Each waveform below is 10 float64 samples -> 80 bytes. A 100 byte
	// budget should therefore only ever hold one entry at a time.
	mc, err := NewMemCache(10, 100)
	if err != nil {
		t.Fatalf("NewMemCache: %v", err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	win := func(i int) Window {
		start := base.Add(time.Duration(i) * time.Minute)
		return Window{Start: start, End: start.Add(time.Second)}
	}
	wave := Waveform{Samples: make([]float64, 10), SampleRate: 10}

	mc.Put("STA1.Z", win(0), wave)
	mc.Put("STA1.Z", win(1), wave)
	mc.Put("STA1.Z", win(2), wave)

	if mc.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after byte-budget eviction", mc.Len())
	}
	if _, ok := mc.Get("STA1.Z", win(0)); ok {
		t.Errorf("oldest entry should have been evicted")
	}
	if _, ok := mc.Get("STA1.Z", win(2)); !ok {
		t.Errorf("newest entry should still be cached")
	}
}

func TestMemCacheGetMiss(t *testing.T) {
	mc, err := NewMemCache(10, 1<<20)
	if err != nil {
		t.Fatalf("NewMemCache: %v", err)
	}
	if _, ok := mc.Get("STA1.Z", Window{}); ok {
		t.Fatalf("expected miss on empty cache")
	}
}
