// Package xcorr orchestrates cross-correlation differential-time
// measurement between pairs of events sharing a station and phase.
//
// What: Engine requests waveforms for each candidate (event1, event2,
// station, phase) tuple from an injected Waveform collaborator, slides
// the short window over the long one via an injected CrossCorrelator
// numeric kernel, and records the accepted (coefficient, lag, component)
// triple in a two-level cache so dd.ObservationBuilder can look it up
// by (refEvent, peerEvent, station, phase).
//
// Why: the raw numeric correlation kernel and the waveform fetch/SNR
// gate are external collaborators invoked through narrow interfaces;
// Engine is a thin orchestration layer — it owns candidate iteration,
// caching, and counters, not signal processing.
//
// Errors: ErrWaveformUnavailable, ErrBelowMinCoef, and
// ErrLagExceedsMaxDelay are per-candidate and recorded into Diagnostics
// rather than propagated — xcorr is skipped and the catalog-only row is
// retained if one is available.
package xcorr
