package cluster

import "github.com/dikadissss/scrtdd/catalog"

// PhaseStation is a (stationID, phaseType) pair shared between a
// reference event and a peer.
type PhaseStation struct {
	StationID string
	Type      catalog.PhaseType
}

// Peer is one accepted neighbour of a reference event: its ID, its
// distance to the reference event (km), and the phases it shares with the
// reference event.
type Peer struct {
	EventID    string
	DistanceKm float64
	Shared     []PhaseStation
	// North, East, Down are the peer's local-km offsets from the
	// reference event, used by the ellipsoid/quadrant stratification
	// in ellipsoid.go. Zero for peers produced outside SelectNeighbours.
	North, East, Down float64
}

// Neighbours is the result of selectNeighbours for one reference event:
// an ordered list of peers (in stratified admission order; nearest
// first only when no MaxNumNeigh cap applies) plus inter-event
// distances already folded into each Peer.
type Neighbours struct {
	RefEventID string
	Peers      []Peer
}
