package xcorr

import (
	"math"
	"sync"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

// earthRadiusKm mirrors partials.ERAD; kept local so xcorr has no
// dependency on partials (waveform candidates are a leaf collaborator).
const earthRadiusKm = 6378.135

// Diagnostics tallies per-candidate outcomes. Callers read a snapshot
// via Engine.Diagnostics after a relocation pass.
type Diagnostics struct {
	Attempts           int
	Accepted           int
	WaveformMissing    int
	SnrRejected        int
	BelowMinCoef       int
	LagExceedsMaxDelay int
	NoComponent        int
}

// Engine is the thin cross-correlation orchestrator: candidate
// iteration, the two-level cache, and counters. It implements
// dd.XCorrLookup without importing dd, so xcorr depends only on catalog
// and neither package imports the other.
type Engine struct {
	Catalog    *catalog.Catalog
	Source     Source
	Correlator CrossCorrelator
	Opts       Options

	mem     *MemCache
	results *resultCache

	mu   sync.Mutex
	diag Diagnostics
}

// NewEngine builds an Engine backed by src and corr, ready to serve
// dd.ObservationBuilder.
func NewEngine(cat *catalog.Catalog, src Source, corr CrossCorrelator, opts Options) (*Engine, error) {
	mem, err := NewMemCache(opts.MemCacheSize, opts.MemCacheByteBudget)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Catalog: cat, Source: src, Correlator: corr, Opts: opts,
		mem: mem, results: newResultCache(),
	}, nil
}

// Diagnostics returns a snapshot of the running counters.
func (e *Engine) Diagnostics() Diagnostics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diag
}

func (e *Engine) phaseConfig(phase catalog.PhaseType) PhaseConfig {
	if phase == catalog.S {
		return e.Opts.S
	}
	return e.Opts.P
}

// Lookup implements dd.XCorrLookup: it serves the result cache first,
// then falls back to computing and caching a fresh measurement. The
// reverse-direction entry is checked too, since a prior call with ref and
// peer swapped measured the same pair and only the lag's sign differs.
func (e *Engine) Lookup(refEventID, peerEventID, stationID string, phase catalog.PhaseType) (cc, lagSec float64, ok bool) {
	if r, found := e.results.get(refEventID, phase, peerEventID, stationID); found {
		return r.CC, r.LagSec, true
	}
	if r, found := e.results.get(peerEventID, phase, refEventID, stationID); found {
		return r.CC, -r.LagSec, true
	}

	e.mu.Lock()
	e.diag.Attempts++
	e.mu.Unlock()

	result, err := e.compute(refEventID, peerEventID, stationID, phase)
	if err != nil {
		e.recordFailure(err)
		return 0, 0, false
	}

	e.mu.Lock()
	e.diag.Accepted++
	e.mu.Unlock()
	e.results.put(refEventID, phase, peerEventID, stationID, result)
	return result.CC, result.LagSec, true
}

func (e *Engine) recordFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch err {
	case ErrSnrBelowThreshold:
		e.diag.SnrRejected++
	case ErrBelowMinCoef:
		e.diag.BelowMinCoef++
	case ErrLagExceedsMaxDelay:
		e.diag.LagExceedsMaxDelay++
	case ErrNoComponent:
		e.diag.NoComponent++
	default:
		e.diag.WaveformMissing++
	}
}

// compute runs the inter-event/event-station distance gate, then tries
// each configured component in priority order, keeping the first one
// that loads for both events. If that component fails the SNR gate (when
// enabled), the candidate is rejected without trying later components.
func (e *Engine) compute(refEventID, peerEventID, stationID string, phase catalog.PhaseType) (Result, error) {
	refEv, ok := e.Catalog.Event(refEventID)
	if !ok {
		return Result{}, ErrWaveformUnavailable
	}
	peerEv, ok := e.Catalog.Event(peerEventID)
	if !ok {
		return Result{}, ErrWaveformUnavailable
	}
	sta, ok := e.Catalog.Station(stationID)
	if !ok {
		return Result{}, ErrWaveformUnavailable
	}
	if e.Opts.XcorrMaxInterEvDist >= 0 &&
		haversineKm(refEv.Lat, refEv.Lon, peerEv.Lat, peerEv.Lon) > e.Opts.XcorrMaxInterEvDist {
		return Result{}, ErrWaveformUnavailable
	}
	if e.Opts.XcorrMaxEvStaDist >= 0 &&
		(haversineKm(refEv.Lat, refEv.Lon, sta.Lat, sta.Lon) > e.Opts.XcorrMaxEvStaDist ||
			haversineKm(peerEv.Lat, peerEv.Lon, sta.Lat, sta.Lon) > e.Opts.XcorrMaxEvStaDist) {
		return Result{}, ErrWaveformUnavailable
	}

	refPh, ok := e.Catalog.Phase(refEventID, stationID, phase)
	if !ok {
		return Result{}, ErrWaveformUnavailable
	}
	peerPh, ok := e.Catalog.Phase(peerEventID, stationID, phase)
	if !ok {
		return Result{}, ErrWaveformUnavailable
	}

	cfg := e.phaseConfig(phase)

	for _, comp := range cfg.Components {
		longWindow := Window{
			Start: refPh.PickTime.Add(cfg.StartOffset - cfg.MaxDelay),
			End:   refPh.PickTime.Add(cfg.EndOffset + cfg.MaxDelay),
		}
		shortWindow := Window{Start: peerPh.PickTime.Add(cfg.StartOffset), End: peerPh.PickTime.Add(cfg.EndOffset)}
		refWave, ok := e.loadWindow(stationID, comp, longWindow)
		if !ok {
			continue
		}
		peerWave, ok := e.loadWindow(stationID, comp, shortWindow)
		if !ok {
			continue
		}
		if e.Opts.SNR.Enabled &&
			(!e.passesSNR(stationID, comp, refPh.PickTime) || !e.passesSNR(stationID, comp, peerPh.PickTime)) {
			return Result{}, ErrSnrBelowThreshold
		}

		coef, lagSamples := e.Correlator.Correlate(refWave.Samples, peerWave.Samples)
		lagSec := float64(lagSamples) / refWave.SampleRate
		if math.Abs(lagSec) > cfg.MaxDelay.Seconds() {
			return Result{}, ErrLagExceedsMaxDelay
		}
		if coef < cfg.MinCoef {
			return Result{}, ErrBelowMinCoef
		}
		return Result{CC: coef, LagSec: lagSec, Component: comp}, nil
	}
	return Result{}, ErrNoComponent
}

// loadWindow fetches window for (stationID, comp), consulting the memory
// cache first. compute calls it with the reference event's long,
// ±MaxDelay-expanded window (the slide range) and the peer event's plain
// short window, per spec.md §4.6.
func (e *Engine) loadWindow(stationID, comp string, window Window) (Waveform, bool) {
	streamID := stationID + "." + comp
	if w, ok := e.mem.Get(streamID, window); ok {
		return w, true
	}
	w, err := e.Source.Load(streamID, comp, window)
	if err != nil {
		return Waveform{}, false
	}
	e.mem.Put(streamID, window, w)
	return w, true
}

// passesSNR loads a window spanning [pickTime-NoiseWindow, pickTime+SignalWindow)
// and compares the RMS amplitude either side of pickTime.
func (e *Engine) passesSNR(stationID, comp string, pickTime time.Time) bool {
	cfg := e.Opts.SNR
	streamID := stationID + ".snr." + comp
	window := Window{Start: pickTime.Add(-cfg.NoiseWindow), End: pickTime.Add(cfg.SignalWindow)}
	w, ok := e.mem.Get(streamID, window)
	if !ok {
		loaded, err := e.Source.Load(streamID, comp, window)
		if err != nil {
			return false
		}
		w = loaded
		e.mem.Put(streamID, window, w)
	}
	noise, ok1 := w.Slice(Window{Start: window.Start, End: pickTime})
	signal, ok2 := w.Slice(Window{Start: pickTime, End: window.End})
	if !ok1 || !ok2 {
		return false
	}
	noiseRMS := rms(noise.Samples)
	signalRMS := rms(signal.Samples)
	if noiseRMS == 0 {
		return signalRMS > 0
	}
	return signalRMS/noiseRMS >= cfg.MinSNR
}

func rms(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x * x
	}
	return math.Sqrt(s / float64(len(xs)))
}

// haversineKm is the great-circle distance in km between two geographic
// points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
