package xcorr

import (
	"testing"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

// fakeSource produces synthetic waveforms split evenly between a
// "noise" amplitude and a "signal" amplitude, so tests can drive the SNR
// gate deterministically. streamIDs listed in missing always fail.
type fakeSource struct {
	missing             map[string]bool
	noiseAmp, signalAmp float64
}

func (s *fakeSource) Load(streamID, component string, window Window) (Waveform, error) {
	if s.missing[streamID] {
		return Waveform{}, ErrWaveformUnavailable
	}
	const rate = 10.0
	n := int(window.Duration().Seconds() * rate)
	if n < 2 {
		n = 2
	}
	samples := make([]float64, n)
	half := n / 2
	for i := range samples {
		if i < half {
			samples[i] = s.noiseAmp
		} else {
			samples[i] = s.signalAmp
		}
	}
	return Waveform{
		StreamID: streamID, Component: component, SampleRate: rate,
		StartTime: window.Start, Samples: samples,
	}, nil
}

// fakeCorrelator returns a fixed coefficient/lag regardless of input,
// letting tests control acceptance without real signal processing.
type fakeCorrelator struct {
	coef float64
	lag  int
}

func (f fakeCorrelator) Correlate(long, short []float64) (float64, int) { return f.coef, f.lag }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(cat.AddStation(catalog.Station{ID: "STA1", Lat: 0, Lon: 0}))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	must(cat.AddEvent(catalog.Event{ID: "E1", OriginTime: base, Lat: 0, Lon: 0, Depth: 5}))
	must(cat.AddEvent(catalog.Event{ID: "E2", OriginTime: base, Lat: 0.01, Lon: 0.01, Depth: 5}))
	must(cat.AddPhase(catalog.Phase{EventID: "E1", StationID: "STA1", Type: catalog.P, PickTime: base.Add(2 * time.Second)}))
	must(cat.AddPhase(catalog.Phase{EventID: "E2", StationID: "STA1", Type: catalog.P, PickTime: base.Add(2050 * time.Millisecond)}))
	return cat
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.SNR.NoiseWindow = 2 * time.Second
	opts.SNR.SignalWindow = 2 * time.Second
	return opts
}

func TestEngineLookupAcceptsAndCaches(t *testing.T) {
	cat := testCatalog(t)
	src := &fakeSource{missing: map[string]bool{}, noiseAmp: 0.1, signalAmp: 10}
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.9, lag: 3}, testOptions())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	cc, lag, ok := e.Lookup("E1", "E2", "STA1", catalog.P)
	if !ok {
		t.Fatalf("Lookup failed, diag=%+v", e.Diagnostics())
	}
	if cc != 0.9 || lag != 0.3 {
		t.Errorf("Lookup = (%v, %v), want (0.9, 0.3)", cc, lag)
	}
	if d := e.Diagnostics(); d.Attempts != 1 || d.Accepted != 1 {
		t.Errorf("diagnostics after first lookup = %+v", d)
	}

	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); !ok {
		t.Fatalf("cached lookup should still succeed")
	}
	if d := e.Diagnostics(); d.Attempts != 1 {
		t.Errorf("Attempts = %d after cache hit, want 1 (no recompute)", d.Attempts)
	}

	revCC, revLag, ok := e.Lookup("E2", "E1", "STA1", catalog.P)
	if !ok || revCC != 0.9 || revLag != -0.3 {
		t.Errorf("reverse-direction lookup = (%v, %v, %v), want (0.9, -0.3, true)", revCC, revLag, ok)
	}
}

func TestEngineLookupBelowMinCoef(t *testing.T) {
	cat := testCatalog(t)
	src := &fakeSource{missing: map[string]bool{}, noiseAmp: 0.1, signalAmp: 10}
	opts := testOptions()
	opts.P.MinCoef = 0.8
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.5, lag: 0}, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); ok {
		t.Fatalf("expected rejection below MinCoef")
	}
	if d := e.Diagnostics(); d.BelowMinCoef != 1 {
		t.Errorf("diagnostics = %+v, want BelowMinCoef=1", d)
	}
}

func TestEngineLookupSNRRejected(t *testing.T) {
	cat := testCatalog(t)
	src := &fakeSource{missing: map[string]bool{}, noiseAmp: 1, signalAmp: 1}
	opts := testOptions()
	opts.SNR.MinSNR = 3
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.95, lag: 0}, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); ok {
		t.Fatalf("expected SNR rejection")
	}
	if d := e.Diagnostics(); d.SnrRejected != 1 {
		t.Errorf("diagnostics = %+v, want SnrRejected=1", d)
	}
}

func TestEngineLookupNoComponent(t *testing.T) {
	cat := testCatalog(t)
	missing := map[string]bool{}
	opts := testOptions()
	for _, comp := range opts.P.Components {
		missing["STA1."+comp] = true
	}
	src := &fakeSource{missing: missing, noiseAmp: 0.1, signalAmp: 10}
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.95, lag: 0}, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); ok {
		t.Fatalf("expected failure when no component loads")
	}
	if d := e.Diagnostics(); d.NoComponent != 1 {
		t.Errorf("diagnostics = %+v, want NoComponent=1", d)
	}
}

func TestEngineLookupInterEventDistanceGate(t *testing.T) {
	cat := testCatalog(t)
	src := &fakeSource{missing: map[string]bool{}, noiseAmp: 0.1, signalAmp: 10}
	opts := testOptions()
	opts.XcorrMaxInterEvDist = 0.01 // km; E1/E2 are ~1.5km apart
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.95, lag: 0}, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); ok {
		t.Fatalf("expected distance-gate rejection")
	}
	if d := e.Diagnostics(); d.WaveformMissing != 1 {
		t.Errorf("diagnostics = %+v, want WaveformMissing=1", d)
	}
}

func TestEngineLookupMaxDelayRejectsLongLag(t *testing.T) {
	cat := testCatalog(t)
	src := &fakeSource{missing: map[string]bool{}, noiseAmp: 0.1, signalAmp: 10}
	opts := testOptions()
	opts.P.MaxDelay = 100 * time.Millisecond
	// lag of 20 samples at 10Hz = 2s, far beyond MaxDelay.
	e, err := NewEngine(cat, src, fakeCorrelator{coef: 0.95, lag: 20}, opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, _, ok := e.Lookup("E1", "E2", "STA1", catalog.P); ok {
		t.Fatalf("expected rejection when lag exceeds MaxDelay")
	}
	if d := e.Diagnostics(); d.LagExceedsMaxDelay != 1 {
		t.Errorf("diagnostics = %+v, want LagExceedsMaxDelay=1", d)
	}
	if d := e.Diagnostics(); d.BelowMinCoef != 0 {
		t.Errorf("diagnostics = %+v, want BelowMinCoef=0 (distinct from the max-delay rejection)", d)
	}
}
