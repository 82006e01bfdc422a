// Package cluster selects, for a reference event, a spatially homogeneous
// set of neighbouring events to use when building double-difference
// observations.
//
// What:
//
//   - Rank candidate events by inter-event distance to the reference event.
//   - Filter per-phase by station distance, epicentral/inter-event ratio,
//     and a-priori weight.
//   - Cap shared phases per pair, then stratify acceptance across
//     concentric, vertically-elongated ellipsoidal shells split into 8
//     octant quadrants, so the resulting neighbour set has homogeneous
//     angular and depth coverage around the reference event (Waldhauser &
//     Ellsworth 2000's ellipsoidal-layer sampling).
//
// Why:
//
//   - A dense cluster of neighbours on one side of the reference event
//     biases the linear system and worsens the solver's conditioning;
//     homogeneous coverage is cheap insurance against that.
//
// Admission order: within a quadrant, events are admitted strictly by
// ascending inter-event distance. Across quadrants within a shell, and
// across shells, admission round-robins in
// the fixed order documented on quadrantOrder. This is deterministic and
// does not depend on maxNumNeigh being a multiple of 8*numEllipsoids.
//
// Errors:
//
//	ErrNotEnoughNeighbours - fewer than MinNumNeigh candidates survived filtering.
package cluster
