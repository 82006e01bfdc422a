package dd

import "github.com/dikadissss/scrtdd/catalog"

// phStaKey identifies a column group of G: one (station, phase) pair
// shared across every event that observes it.
type phStaKey struct {
	StationID string
	Type      catalog.PhaseType
}

// DDSystem is the dense-sparse hybrid double-difference design matrix.
// A fresh DDSystem is built once per outer relocation iteration; it owns
// its arrays exclusively and is never mutated by anything but Solve's
// caller copying the returned m back onto it.
type DDSystem struct {
	NEvts          int
	NPhStas        int
	NObs           int
	NTTConstraints int

	// EventIndex/EventIDs are inverses of each other: EventIndex[id]
	// gives the column-block index into G/M, EventIDs[idx] the ID back.
	EventIndex map[string]int
	EventIDs   []string
	// Fixed marks event indices excluded from the solved unknowns; a
	// fixed side encodes its absent column with sentinel -1.
	Fixed map[int]bool

	PhStaIndex map[phStaKey]int
	PhStas     []phStaKey

	// G is length NEvts*NPhStas; G[e*NPhStas+s] holds the four partials
	// for event e at phase-station s, filled only where referenced.
	G [][4]float64
	// W, D are length NObs+NTTConstraints.
	W []float64
	D []float64
	// AprioriW is length NObs+NTTConstraints: the weight each row was
	// assembled with before any WeightOverride substitution, i.e. the
	// wApriori of spec.md §4.5's bi-weight formula
	// w_i <- wApriori_i * (1-(r_i/alpha)^2)^2. reloc's outer loop reads
	// this, not W, when computing the next iteration's down-weighting,
	// so the bi-weight doesn't compound onto an already down-weighted W.
	AprioriW []float64
	// M is length NEvts*4: (Δx, Δy, Δz, Δt) per event, km/km/km/s.
	M []float64
	// EvByObs[0][row]/EvByObs[1][row] are event-column indices for each
	// row's two sides; -1 marks a fixed or absent side.
	EvByObs [2][]int
	// PhStaByObs[row] is the phase-station column group index for row.
	PhStaByObs []int
	// L2NScaler is length NEvts*4, one scaler per unknown column.
	L2NScaler []float64

	IsXcorr   []bool
	RefEvent  []string
	PeerEvent []string

	// RowsDroppedOutOfRange counts observation rows dropped because the
	// travel-time provider failed on one side; reloc folds this into its
	// per-run Diagnostics.
	RowsDroppedOutOfRange int
}

// ObservationKey returns the deterministic (refEvent, peerEvent,
// station, phase) tuple identifying row — stable across outer
// iterations even though row indices themselves are not, so callers
// threading residual down-weighting across iterations can key by it
// instead of by row index.
func (sys *DDSystem) ObservationKey(row int) (refEventID, peerEventID, stationID string, phase catalog.PhaseType) {
	ps := sys.PhStas[sys.PhStaByObs[row]]
	return sys.RefEvent[row], sys.PeerEvent[row], ps.StationID, ps.Type
}
