package cluster

import (
	"math"
	"sort"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/partials"
)

// SelectNeighbours ranks candidates by inter-event distance, filters
// them per-phase, caps shared phases per pair, then admits neighbours
// through ellipsoidal-shell / octant-quadrant stratification until
// Options.MaxNumNeigh is reached or candidates are exhausted. Returns
// ErrNotEnoughNeighbours if fewer than Options.MinNumNeigh peers survive.
func SelectNeighbours(cat *catalog.Catalog, refEventID string, opts Options) (Neighbours, error) {
	ref, ok := cat.Event(refEventID)
	if !ok {
		return Neighbours{}, ErrUnknownEvent
	}
	origin := partials.NewCentroid([]float64{ref.Lat}, []float64{ref.Lon}, []float64{ref.Depth})

	type candidate struct {
		ev     catalog.Event
		distKm float64
		shared []scoredPhase
	}

	var candidates []candidate
	for _, id := range cat.EventIDs() {
		if id == refEventID {
			continue
		}
		ev, _ := cat.Event(id)
		interDist := origin.DistanceKm(ref.Lat, ref.Lon, ref.Depth, ev.Lat, ev.Lon, ev.Depth)
		shared := sharedPhases(cat, origin, ref, ev, opts, interDist)
		if len(shared) < opts.MinDTperEvt {
			continue
		}
		shared = capShared(shared, opts.MaxDTperEvt)
		candidates = append(candidates, candidate{ev: ev, distKm: interDist, shared: shared})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].distKm < candidates[j].distKm })

	peers := make([]Peer, len(candidates))
	for i, c := range candidates {
		pairs := make([]PhaseStation, len(c.shared))
		for j, sp := range c.shared {
			pairs[j] = sp.ps
		}
		east, north, down := origin.ToLocal(c.ev.Lat, c.ev.Lon, c.ev.Depth)
		peers[i] = Peer{EventID: c.ev.ID, DistanceKm: c.distKm, Shared: pairs, North: north, East: east, Down: down}
	}

	accepted := stratifyByEllipsoid(peers, opts)
	if len(accepted) < opts.MinNumNeigh {
		return Neighbours{}, ErrNotEnoughNeighbours
	}
	return Neighbours{RefEventID: refEventID, Peers: accepted}, nil
}

type scoredPhase struct {
	ps     PhaseStation
	weight float64
}

// sharedPhases returns every (station, phaseType) both ref and peer
// recorded, passing the distance/ratio/weight filters.
func sharedPhases(cat *catalog.Catalog, origin partials.Centroid, ref, peer catalog.Event, opts Options, interDist float64) []scoredPhase {
	refPhases := cat.PhasesOf(ref.ID)
	peerPhases := cat.PhasesOf(peer.ID)

	type key struct {
		station string
		ptype   catalog.PhaseType
	}
	peerByKey := make(map[key]catalog.Phase, len(peerPhases))
	for _, p := range peerPhases {
		peerByKey[key{p.StationID, p.Type}] = p
	}

	var out []scoredPhase
	for _, rp := range refPhases {
		pp, ok := peerByKey[key{rp.StationID, rp.Type}]
		if !ok {
			continue
		}
		st, ok := cat.Station(rp.StationID)
		if !ok {
			continue
		}
		esDist := origin.DistanceKm(ref.Lat, ref.Lon, 0, st.Lat, st.Lon, 0)
		if esDist < opts.MinESdist {
			continue
		}
		if opts.MaxESdist >= 0 && esDist > opts.MaxESdist {
			continue
		}
		if interDist > 0 && opts.MinEStoIEratio > 0 && esDist/interDist < opts.MinEStoIEratio {
			continue
		}
		w := math.Min(rp.APrioriWeight, pp.APrioriWeight)
		if w < opts.MinWeight {
			continue
		}
		out = append(out, scoredPhase{ps: PhaseStation{StationID: rp.StationID, Type: rp.Type}, weight: w})
	}
	return out
}

// capShared caps the shared-phase list at max, keeping highest-weight
// phases first and breaking ties by station ID lexicographic order.
// max==0 disables the cap.
func capShared(in []scoredPhase, max int) []scoredPhase {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].weight != in[j].weight {
			return in[i].weight > in[j].weight
		}
		if in[i].ps.StationID != in[j].ps.StationID {
			return in[i].ps.StationID < in[j].ps.StationID
		}
		return in[i].ps.Type < in[j].ps.Type
	})
	if max > 0 && len(in) > max {
		in = in[:max]
	}
	return in
}
