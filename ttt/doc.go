// Package ttt provides travel-time lookups for the double-difference
// engine: given a source location and a (station, phase), return the
// travel time and, when the backend supports it, the take-off
// azimuth/dip and source velocity the partials package needs.
//
// Two backends share the Provider interface:
//
//   - Tabulated: an opaque, named-model lookup (LOCSAT-style) returning
//     only travel time; azimuth/dip/velocity come back as NaN.
//   - Gridded: three grids per (station, phase), each read whole into
//     memory rather than memory-mapped — velocity,
//     travel-time, and take-off angle — laid out the way NonLinLoc's
//     on-disk grid format does. Rather than separate TimeGrid/AngleGrid/
//     VelGrid types, this package represents all three as one Grid value
//     tagged isAngle: Value interpolates plain scalar cells (time or
//     velocity), Angle interpolates packed (quality, dip, azimuth)
//     samples via decodeAngle and the dip/azimuth-aware blend in
//     angle_interp.go. No dynamic dispatch sits in the interpolation hot
//     path.
//
// Coordinate transforms (SIMPLE, SDC, NONE) are a closed, three-member
// tagged union; selection is a switch on Transform.Kind, not an
// interface.
//
// Errors:
//
//	ErrOutOfRange   - the query point falls outside the grid's bounding box.
//	ErrUnloadable   - the (station, phase) triple previously failed to load
//	                  and is now permanently rejected for this Provider's
//	                  lifetime.
//	ErrBadHeader    - a grid header failed to parse; structural, fatal to load.
//	ErrLowQuality   - an angle-grid sample's quality fell below QualityCutoff.
package ttt
