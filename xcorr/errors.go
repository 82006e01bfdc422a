package xcorr

import "errors"

var (
	// ErrWaveformUnavailable indicates the waveform collaborator could
	// not supply a trace for a candidate; that candidate is skipped.
	ErrWaveformUnavailable = errors.New("xcorr: waveform unavailable")

	// ErrSnrBelowThreshold indicates the SNR gate rejected a waveform.
	ErrSnrBelowThreshold = errors.New("xcorr: snr below threshold")

	// ErrBelowMinCoef indicates the best correlation coefficient found
	// fell below the configured minimum and was not accepted.
	ErrBelowMinCoef = errors.New("xcorr: correlation coefficient below minimum")

	// ErrLagExceedsMaxDelay indicates the best-fit lag fell outside the
	// configured ±MaxDelay window and was rejected before the
	// coefficient was even compared against MinCoef.
	ErrLagExceedsMaxDelay = errors.New("xcorr: lag exceeds configured max delay")

	// ErrNoComponent indicates none of the configured components loaded
	// successfully for both events.
	ErrNoComponent = errors.New("xcorr: no component loaded for both events")
)
