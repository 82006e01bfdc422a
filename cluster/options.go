package cluster

// Options configures neighbour selection. All fields are semantic;
// DefaultOptions returns a conservative set of defaults.
type Options struct {
	// MinWeight is the minimum a-priori phase weight admitted (0-1).
	MinWeight float64
	// MinEStoIEratio is the minimum epicentral-to-inter-event distance ratio required.
	MinEStoIEratio float64
	// MinESdist is the minimum station-to-event distance allowed (km).
	MinESdist float64
	// MaxESdist is the maximum station-to-event distance allowed (km); -1 disables.
	MaxESdist float64
	// MinNumNeigh is the minimum accepted neighbour count; below this, selectNeighbours fails.
	MinNumNeigh int
	// MaxNumNeigh caps accepted neighbours; 0 disables the cap.
	MaxNumNeigh int
	// MinDTperEvt is the minimum shared-phase count required per candidate pair.
	MinDTperEvt int
	// MaxDTperEvt caps shared phases kept per pair; 0 disables the cap.
	MaxDTperEvt int
	// NumEllipsoids is the number of concentric ellipsoidal shells (default 5).
	NumEllipsoids int
	// MaxEllipsoidSize is the outermost shell's semi-major axis, km.
	MaxEllipsoidSize float64
	// XcorrMaxEvStaDist bounds event-to-station distance for xcorr candidates; -1 disables.
	XcorrMaxEvStaDist float64
	// XcorrMaxInterEvDist bounds inter-event distance for xcorr candidates; -1 disables.
	XcorrMaxInterEvDist float64
}

// DefaultOptions returns the package's documented defaults.
func DefaultOptions() Options {
	return Options{
		MinWeight:           0,
		MinEStoIEratio:      0,
		MinESdist:           0,
		MaxESdist:           -1,
		MinNumNeigh:         1,
		MaxNumNeigh:         0,
		MinDTperEvt:         1,
		MaxDTperEvt:         0,
		NumEllipsoids:       5,
		MaxEllipsoidSize:    10,
		XcorrMaxEvStaDist:   -1,
		XcorrMaxInterEvDist: -1,
	}
}
