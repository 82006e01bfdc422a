package ttt

import (
	"math"
	"sync"

	"github.com/dikadissss/scrtdd/catalog"
)

// StationLocator resolves a station ID to its fixed geographic location.
// Tabulated needs it to turn (event, station) into a source-receiver
// distance; Gridded doesn't, since its grids are already anchored at the
// station.
type StationLocator interface {
	Station(stationID string) (catalog.Station, bool)
}

// TableSource supplies a pre-built 1-D travel-time curve for one
// (model, phase) pair: travel time as a function of source-receiver
// distance and source depth. Tabulated is the simple backend for models
// that don't carry azimuth/dip information.
type TableSource interface {
	TravelTime(model string, phase catalog.PhaseType, distanceKm, depthKm float64) (float64, error)
}

type tableKey struct {
	model   string
	station string
	phase   catalog.PhaseType
}

// Tabulated is the simple 1-D travel-time backend: distance/depth in,
// travel time out, no take-off angle or velocity. Like Gridded it
// remembers (model, station, phase) triples that failed once so repeat
// lookups fail fast rather than retrying the source.
type Tabulated struct {
	src       TableSource
	stations  StationLocator
	model     string

	mu         sync.RWMutex
	unloadable map[tableKey]struct{}
}

// NewTabulated constructs a Tabulated provider over src for the given
// model name, resolving station coordinates via stations.
func NewTabulated(src TableSource, stations StationLocator, model string) *Tabulated {
	return &Tabulated{src: src, stations: stations, model: model, unloadable: make(map[tableKey]struct{})}
}

// Compute implements Provider for the tabulated backend.
func (t *Tabulated) Compute(eventLat, eventLon, eventDepth float64, stationID string, phase catalog.PhaseType) (Result, error) {
	key := tableKey{t.model, stationID, phase}

	t.mu.RLock()
	_, bad := t.unloadable[key]
	t.mu.RUnlock()
	if bad {
		return Result{}, ErrUnloadable
	}

	sta, ok := t.stations.Station(stationID)
	if !ok {
		t.mark(key)
		return Result{}, ErrUnknownModel
	}

	distanceKm := haversineKm(eventLat, eventLon, sta.Lat, sta.Lon)
	tt, err := t.src.TravelTime(t.model, phase, distanceKm, eventDepth)
	if err != nil {
		t.mark(key)
		return Result{}, err
	}
	return Result{
		TravelTime:     tt,
		TakeoffAzimDeg: math.NaN(),
		TakeoffDipDeg:  math.NaN(),
		VelocityAtSrc:  math.NaN(),
	}, nil
}

func (t *Tabulated) mark(key tableKey) {
	t.mu.Lock()
	t.unloadable[key] = struct{}{}
	t.mu.Unlock()
}

// haversineKm is the great-circle distance in km between two
// geographic points, kept local so ttt has no dependency on partials.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const r = earthRadiusKm
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return r * c
}
