package catalog

import "errors"

// Sentinel errors for catalog construction and mutation.
var (
	// ErrEmptyEventID indicates AddEvent was given an Event with an empty ID.
	ErrEmptyEventID = errors.New("catalog: event ID is empty")

	// ErrEmptyStationID indicates AddStation was given a Station with an empty ID.
	ErrEmptyStationID = errors.New("catalog: station ID is empty")

	// ErrDuplicateEvent indicates AddEvent was called twice for the same ID.
	ErrDuplicateEvent = errors.New("catalog: duplicate event ID")

	// ErrDuplicateStation indicates AddStation was called twice for the same ID.
	ErrDuplicateStation = errors.New("catalog: duplicate station ID")

	// ErrUnknownEvent indicates a Phase references an event absent from the Catalog.
	ErrUnknownEvent = errors.New("catalog: phase references unknown event")

	// ErrUnknownStation indicates a Phase references a station absent from the Catalog.
	ErrUnknownStation = errors.New("catalog: phase references unknown station")

	// ErrDuplicatePhase indicates (eventId, stationId, phaseType) was already present.
	ErrDuplicatePhase = errors.New("catalog: duplicate (event, station, phase) tuple")

	// ErrInvalidWeight indicates an a-priori weight outside [0,1].
	ErrInvalidWeight = errors.New("catalog: a-priori weight must be within [0,1]")

	// ErrInvalidPhaseType indicates a phase type outside {P, S}.
	ErrInvalidPhaseType = errors.New("catalog: phase type must be P or S")
)
