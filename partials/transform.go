package partials

import "math"

// ERAD is the mean Earth radius in kilometres, matching
// original_source/libs/hdd/nllttt.h's MAP_TRANS constants.
const ERAD = 6378.135

// c111 is kilometres per degree of latitude (a sphere-of-ERAD
// approximation): 10000 km pole-to-equator over 90 degrees.
const c111 = 10000.0 / 90.0

// Centroid is the coordinate origin for a set of local Cartesian
// conversions: the mean lat/lon/depth of the events participating in one
// outer relocation iteration.
type Centroid struct {
	Lat, Lon, Depth float64 // degrees, degrees, km
	cosLat          float64
}

// NewCentroid computes the centroid of the given lat/lon/depth triples.
// Panics-free: an empty slice yields the zero Centroid.
func NewCentroid(lats, lons, depths []float64) Centroid {
	n := len(lats)
	if n == 0 {
		return Centroid{}
	}
	var sLat, sLon, sDepth float64
	for i := 0; i < n; i++ {
		sLat += lats[i]
		sLon += lons[i]
		sDepth += depths[i]
	}
	c := Centroid{Lat: sLat / float64(n), Lon: sLon / float64(n), Depth: sDepth / float64(n)}
	c.cosLat = math.Cos(c.Lat * math.Pi / 180)
	return c
}

// ToLocal converts geographic coordinates to local east/north/down
// kilometres about the centroid.
func (c Centroid) ToLocal(lat, lon, depth float64) (x, y, z float64) {
	x = (lon - c.Lon) * c111 * c.cosLat
	y = (lat - c.Lat) * c111
	z = depth - c.Depth
	return x, y, z
}

// FromLocal is the exact algebraic inverse of ToLocal: for any (x,y,z)
// produced by ToLocal(lat,lon,depth), FromLocal reproduces (lat,lon,depth)
// to floating-point precision.
func (c Centroid) FromLocal(x, y, z float64) (lat, lon, depth float64) {
	lon = c.Lon + x/(c111*c.cosLat)
	lat = c.Lat + y/c111
	depth = c.Depth + z
	return lat, lon, depth
}

// DistanceKm returns the straight-line distance in km between two
// geographic points, computed via the centroid's local-km projection
// (sufficient for the short inter-event/station baselines this engine
// handles; not a geodesic).
func (c Centroid) DistanceKm(lat1, lon1, depth1, lat2, lon2, depth2 float64) float64 {
	x1, y1, z1 := c.ToLocal(lat1, lon1, depth1)
	x2, y2, z2 := c.ToLocal(lat2, lon2, depth2)
	dx, dy, dz := x1-x2, y1-y2, z1-z2
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
