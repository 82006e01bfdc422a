package xcorr

import "time"

// Window is a half-open time window [Start, End).
type Window struct {
	Start, End time.Time
}

// Duration reports the window's length.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// Waveform is a loaded trace: its samples, sample rate, and start time.
// Engine treats this as an opaque payload past loading — only length and
// timing matter for window slicing; the actual sample values are handed
// to CrossCorrelator untouched.
type Waveform struct {
	StreamID   string
	Component  string
	SampleRate float64 // Hz
	StartTime  time.Time
	Samples    []float64
}

// Source is the waveform-fetch collaborator: the raw loader composed
// with disk-cache, SNR-filter, and mem-cache layers ahead of it by the
// caller. Engine only ever calls Load.
type Source interface {
	Load(streamID, component string, window Window) (Waveform, error)
}

// Slice returns the sub-waveform covering window, or ok=false if window
// isn't fully contained.
func (w Waveform) Slice(window Window) (Waveform, bool) {
	if window.Start.Before(w.StartTime) {
		return Waveform{}, false
	}
	n := len(w.Samples)
	end := w.StartTime.Add(time.Duration(float64(n) / w.SampleRate * float64(time.Second)))
	if window.End.After(end) {
		return Waveform{}, false
	}
	startIdx := int(window.Start.Sub(w.StartTime).Seconds() * w.SampleRate)
	endIdx := int(window.End.Sub(w.StartTime).Seconds() * w.SampleRate)
	if startIdx < 0 || endIdx > n || startIdx >= endIdx {
		return Waveform{}, false
	}
	return Waveform{
		StreamID: w.StreamID, Component: w.Component, SampleRate: w.SampleRate,
		StartTime: window.Start, Samples: w.Samples[startIdx:endIdx],
	}, true
}

// CrossCorrelator is the raw numeric-correlation kernel, injected rather
// than implemented inline. It computes the normalised cross-correlation of
// short slid across long, returning the maximum coefficient and the lag
// (in samples, positive meaning short is delayed relative to long) at
// which it occurs.
type CrossCorrelator interface {
	Correlate(long, short []float64) (maxCoef float64, lagSamples int)
}
