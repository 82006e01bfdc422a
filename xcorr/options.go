package xcorr

import (
	"context"
	"time"
)

// PhaseConfig is the per-phase-type xcorr configuration, one instance
// each for P and S phases.
type PhaseConfig struct {
	MinCoef      float64
	StartOffset  time.Duration
	EndOffset    time.Duration
	MaxDelay     time.Duration
	Components   []string // tried in order; first pair that loads for both events wins
}

// SNRConfig gates waveform acceptance before correlation.
type SNRConfig struct {
	Enabled      bool
	MinSNR       float64
	NoiseWindow  time.Duration
	SignalWindow time.Duration
}

// Options configures Engine.
type Options struct {
	Ctx     context.Context
	Verbose bool

	P, S PhaseConfig
	SNR  SNRConfig

	XcorrMaxEvStaDist   float64 // km; -1 disables
	XcorrMaxInterEvDist float64 // km; -1 disables

	// MemCacheSize bounds the waveform memory cache's entry count
	// (hashicorp/golang-lru/v2 evicts least-recently-used beyond it).
	MemCacheSize int
	// MemCacheByteBudget is the soft byte budget for the waveform memory
	// cache; entries are evicted by the LRU ahead of this if the memory
	// estimate exceeds it.
	MemCacheByteBudget int64
}

// DefaultOptions returns the engine's documented xcorr/snr defaults.
func DefaultOptions() Options {
	phase := PhaseConfig{
		MinCoef:     0.7,
		StartOffset: -time.Second / 2,
		EndOffset:   1 * time.Second,
		MaxDelay:    time.Second / 2,
		Components:  []string{"Z", "N", "E"},
	}
	return Options{
		Ctx: context.Background(),
		P:   phase,
		S:   phase,
		SNR: SNRConfig{
			Enabled:      true,
			MinSNR:       3,
			NoiseWindow:  5 * time.Second,
			SignalWindow: 2 * time.Second,
		},
		XcorrMaxEvStaDist:   -1,
		XcorrMaxInterEvDist: -1,
		MemCacheSize:        4096,
		MemCacheByteBudget:  256 << 20,
	}
}
