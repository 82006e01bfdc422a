package ttt

import "github.com/dikadissss/scrtdd/catalog"

// Result carries a travel time plus, when the backend supports it, the
// take-off azimuth/dip and the velocity at the source. Tabulated lookups
// leave Azim/Dip/VelocityAtSrc as NaN.
type Result struct {
	TravelTime     float64
	TakeoffAzimDeg float64
	TakeoffDipDeg  float64
	VelocityAtSrc  float64
}

// Provider is the travel-time collaborator contract consumed by dd and
// reloc. Both Tabulated and Gridded implement it.
type Provider interface {
	Compute(eventLat, eventLon, eventDepth float64, stationID string, phase catalog.PhaseType) (Result, error)
}
