package ttt

import "errors"

var (
	// ErrOutOfRange indicates the query point is outside the grid's bounding box.
	ErrOutOfRange = errors.New("ttt: query point outside grid bounding box")

	// ErrUnloadable indicates this (station, phase) previously failed to
	// load and is now rejected without retrying the disk.
	ErrUnloadable = errors.New("ttt: station/phase grid is unloadable")

	// ErrBadHeader indicates a grid header failed to parse.
	ErrBadHeader = errors.New("ttt: malformed grid header")

	// ErrLowQuality indicates an angle sample's quality fell below QualityCutoff.
	ErrLowQuality = errors.New("ttt: angle sample quality below cutoff")

	// ErrUnknownModel indicates a Tabulated lookup whose station is unknown to
	// its StationLocator; errors from the TableSource are returned as they are.
	ErrUnknownModel = errors.New("ttt: unknown tabulated model")
)

// QualityCutoff is the minimum per-cell angle-grid quality accepted;
// samples below this are rejected.
const QualityCutoff = 5
