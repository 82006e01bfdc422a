package dd

import "errors"

var (
	// ErrEmptySystem indicates Solve was called against a DDSystem with no events.
	ErrEmptySystem = errors.New("dd: empty system has no event columns to solve for")

	// ErrNoObservations indicates ObservationBuilder produced zero rows;
	// the caller should treat this the same as NotEnoughNeighbours.
	ErrNoObservations = errors.New("dd: no observations survived assembly")
)
