package partials

import "math"

// Row holds the four partial derivatives of travel time with respect to
// hypocentral parameters for one (event, station-phase) pair:
// (∂t/∂x, ∂t/∂y, ∂t/∂z, 1). It is the value stored in dd.DDSystem's G
// matrix at G[e*nPhStas+s].
type Row [4]float64

// Compute derives Row from a take-off azimuth/dip (degrees, azimuth east
// of north, dip from downward vertical) and the velocity at the source
// (km/s). OutOfRange travel-time lookups never reach here — the caller
// skips the (event, station-phase) pair entirely.
func Compute(takeoffAzimDeg, takeoffDipDeg, velocityAtSrc float64) Row {
	slowness := 1 / velocityAtSrc
	azim := takeoffAzimDeg * math.Pi / 180
	dip := takeoffDipDeg * math.Pi / 180
	sinDip, cosDip := math.Sincos(dip)
	sinAzim, cosAzim := math.Sincos(azim)
	return Row{
		-slowness * sinDip * sinAzim, // ∂t/∂x (east)
		-slowness * sinDip * cosAzim, // ∂t/∂y (north)
		-slowness * cosDip,           // ∂t/∂z (down)
		1,                            // ∂t/∂(origin time)
	}
}
