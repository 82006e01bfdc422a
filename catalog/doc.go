// Package catalog defines the seismic data model consumed by the
// relocation engine: Event, Station, Phase and the Catalog that ties
// them together with referential-integrity checks.
//
// What:
//
//   - Event: a hypocentre (time, lat, lon, depth) with an optional magnitude.
//   - Station: a fixed receiver location.
//   - Phase: a single pick of a P or S arrival at a station for an event.
//   - Catalog: an unordered collection of the three, indexed for O(1) lookup,
//     built once and immutable thereafter — relocation produces a new
//     Catalog rather than mutating an existing one.
//
// Why:
//
//   - Keeping Event/Station/Phase as plain value types and wiring them
//     together only through integer-free, string IDs mirrors how the rest
//     of the engine treats graphs of events: no pointers between records,
//     lookups go through the Catalog's maps.
//
// Errors:
//
//	ErrEmptyEventID     - an Event was given an empty ID.
//	ErrEmptyStationID   - a Station was given an empty ID.
//	ErrDuplicateEvent   - AddEvent called twice for the same ID.
//	ErrDuplicateStation - AddStation called twice for the same ID.
//	ErrUnknownEvent     - a Phase references an event not in the Catalog.
//	ErrUnknownStation   - a Phase references a station not in the Catalog.
//	ErrDuplicatePhase   - (eventId, stationId, phaseType) already present.
//	ErrInvalidWeight    - a-priori weight outside [0,1].
package catalog
