package ttt

import (
	"fmt"
	"sync"

	"github.com/dikadissss/scrtdd/catalog"
)

// GridKind selects which of the three per-(station,phase) grids to read.
type GridKind int

const (
	VelocityGrid GridKind = iota
	TimeGrid
	AngleGridKind
)

// GridSource is the narrow interface onto the on-disk gridded
// travel-time reader; locating and reading the raw grid files is left to
// the implementation. ReadGrid returns the raw
// ASCII header text and the raw little-endian (or swapped) cell buffer
// for one (station, phase, kind) triple; Gridded does all header
// parsing, byte-order handling, and interpolation itself.
type GridSource interface {
	ReadGrid(modelBase, stationID string, phase catalog.PhaseType, kind GridKind, swapBytes bool) (headerText string, buf []byte, err error)
}

type gridKey struct {
	station string
	phase   catalog.PhaseType
}

type loadedGrids struct {
	vel  *Grid
	time *Grid
	ang  *Grid
}

// Gridded is the NLL-style travel-time backend. It caches loaded
// (station, phase) grid triples behind a mutex so independent relocation
// clusters can share them, and remembers failed loads so subsequent
// requests for the same (station, phase) fail fast without retrying the
// disk.
type Gridded struct {
	src       GridSource
	modelBase string
	swapBytes bool

	mu         sync.RWMutex
	loaded     map[gridKey]*loadedGrids
	unloadable map[gridKey]struct{}
}

// NewGridded constructs a Gridded provider reading from src under the
// given model base name.
func NewGridded(src GridSource, modelBase string, swapBytes bool) *Gridded {
	return &Gridded{
		src:        src,
		modelBase:  modelBase,
		swapBytes:  swapBytes,
		loaded:     make(map[gridKey]*loadedGrids),
		unloadable: make(map[gridKey]struct{}),
	}
}

func (g *Gridded) get(stationID string, phase catalog.PhaseType) (*loadedGrids, error) {
	key := gridKey{stationID, phase}

	g.mu.RLock()
	if _, bad := g.unloadable[key]; bad {
		g.mu.RUnlock()
		return nil, ErrUnloadable
	}
	if lg, ok := g.loaded[key]; ok {
		g.mu.RUnlock()
		return lg, nil
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	// Re-check under the write lock: another goroutine may have loaded
	// or failed this key while we waited.
	if _, bad := g.unloadable[key]; bad {
		return nil, ErrUnloadable
	}
	if lg, ok := g.loaded[key]; ok {
		return lg, nil
	}

	lg, err := g.load(stationID, phase)
	if err != nil {
		g.unloadable[key] = struct{}{}
		return nil, err
	}
	g.loaded[key] = lg
	return lg, nil
}

func (g *Gridded) load(stationID string, phase catalog.PhaseType) (*loadedGrids, error) {
	vel, err := g.loadOne(stationID, phase, VelocityGrid, false)
	if err != nil {
		return nil, err
	}
	tt, err := g.loadOne(stationID, phase, TimeGrid, false)
	if err != nil {
		return nil, err
	}
	ang, err := g.loadOne(stationID, phase, AngleGridKind, true)
	if err != nil {
		return nil, err
	}
	return &loadedGrids{vel: vel, time: tt, ang: ang}, nil
}

func (g *Gridded) loadOne(stationID string, phase catalog.PhaseType, kind GridKind, isAngle bool) (*Grid, error) {
	headerText, buf, err := g.src.ReadGrid(g.modelBase, stationID, phase, kind, g.swapBytes)
	if err != nil {
		return nil, fmt.Errorf("ttt: read grid %v/%v/%v: %w", stationID, phase, kind, err)
	}
	h, err := parseHeader(headerText)
	if err != nil {
		return nil, err
	}
	h.SwapBytes = g.swapBytes
	n := h.NumX * h.NumY * h.NumZ
	if h.Is2D() {
		n = h.NumY * h.NumZ
	}
	// Angle cells pack (quality,dip,azimuth) into a 32-bit integer value
	// (angle.go); a float32 cell's 24-bit mantissa can't hold every such
	// value exactly, so angle buffers are always read as doubles
	// regardless of the header's own useDouble flag.
	useDouble := h.UseDouble || isAngle
	values, err := decodeBuffer(buf, n, useDouble, h.SwapBytes)
	if err != nil {
		return nil, err
	}
	if isAngle {
		return NewAngleGrid(h, values), nil
	}
	return NewValueGrid(h, values), nil
}

// Compute implements Provider for the gridded backend.
func (g *Gridded) Compute(eventLat, eventLon, eventDepth float64, stationID string, phase catalog.PhaseType) (Result, error) {
	lg, err := g.get(stationID, phase)
	if err != nil {
		return Result{}, err
	}
	x, y := lg.time.Header.Transform.ToXY(eventLat, eventLon)
	z := eventDepth

	travelTime, err := lg.time.Value(x, y, z)
	if err != nil {
		return Result{}, err
	}
	velocity, err := lg.vel.Value(x, y, z)
	if err != nil {
		return Result{}, err
	}
	angle, err := lg.ang.Angle(x, y, z)
	if err != nil {
		return Result{}, err
	}
	azim := lg.ang.Header.Transform.RotateAngle(angle.AzimDeg)
	return Result{
		TravelTime:     travelTime,
		TakeoffAzimDeg: azim,
		TakeoffDipDeg:  angle.DipDeg,
		VelocityAtSrc:  velocity,
	}, nil
}
