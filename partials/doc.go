// Package partials computes travel-time partial derivatives with respect
// to hypocentral parameters, and hosts the one local Cartesian transform
// the rest of the engine shares: geographic (lat, lon, depth) around a
// centroid in and out of local east/north/down kilometres.
//
// What:
//
//   - ToLocal/FromLocal: small-angle geographic ⇄ local-km conversion
//     about an arbitrary centroid, shared by cluster (inter-event
//     distances), ttt (nothing — grids bring their own Transform, see
//     ttt.Transform), and reloc (applying solved deltas back to
//     coordinates).
//   - Compute: given a take-off azimuth/dip and source velocity,
//     returns the four partials (∂t/∂x, ∂t/∂y, ∂t/∂z, 1) that the
//     double-difference Jacobian needs for each phase observation.
//
// Why one shared transform: three independent small-angle
// implementations is how double-difference systems quietly drift apart
// (km-per-degree constants creeping out of sync); keeping exactly one
// here and importing it everywhere else avoids that.
package partials
