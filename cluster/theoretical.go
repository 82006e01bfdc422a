package cluster

import (
	"sort"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

// TheoreticalOptions configures artificial-phase synthesis.
type TheoreticalOptions struct {
	// Enabled turns synthesis on.
	Enabled bool
	// MinPeers is the minimum peer count (K) carrying a (station,phase)
	// before a theoretical phase is synthesised for the reference event.
	MinPeers int
	// MaxPeersForWeight caps the peer count used when computing
	// weight = peerCount/MaxPeersForWeight (capped at 1).
	MaxPeersForWeight int
}

// DefaultTheoreticalOptions returns the conservative default (K=3).
func DefaultTheoreticalOptions() TheoreticalOptions {
	return TheoreticalOptions{Enabled: false, MinPeers: 3, MaxPeersForWeight: 3}
}

// predictor supplies a predicted arrival time for (peer event, station,
// phase type); reloc wires this to the ttt provider plus the peer's
// current origin time.
type predictor func(peerEventID, stationID string, ptype catalog.PhaseType) (time.Time, bool)

// SynthesizeTheoretical synthesises artificial phases: for the reference
// event and every (station, phaseType) present in at least MinPeers peers but
// absent from the reference event's own picks, synthesise a phase at the
// median predicted arrival time, weighted by peer coverage. Theoretical
// phases never replace observed ones.
func SynthesizeTheoretical(cat *catalog.Catalog, n Neighbours, opts TheoreticalOptions, predict predictor) []catalog.Phase {
	if !opts.Enabled {
		return nil
	}
	refPhases := cat.PhasesOf(n.RefEventID)
	have := make(map[PhaseStation]struct{}, len(refPhases))
	for _, p := range refPhases {
		have[PhaseStation{StationID: p.StationID, Type: p.Type}] = struct{}{}
	}

	counts := make(map[PhaseStation][]time.Time)
	for _, peer := range n.Peers {
		// peer.Shared only ever lists (station,phase) pairs the
		// reference event already has too — it is exactly the
		// intersection selectNeighbours built it from — so a candidate
		// missing from the reference event's own picks can only be
		// found by scanning the peer's full phase list.
		for _, p := range cat.PhasesOf(peer.EventID) {
			ps := PhaseStation{StationID: p.StationID, Type: p.Type}
			if _, ok := have[ps]; ok {
				continue
			}
			t, ok := predict(peer.EventID, ps.StationID, ps.Type)
			if !ok {
				continue
			}
			counts[ps] = append(counts[ps], t)
		}
	}

	var keys []PhaseStation
	for ps := range counts {
		keys = append(keys, ps)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].StationID != keys[j].StationID {
			return keys[i].StationID < keys[j].StationID
		}
		return keys[i].Type < keys[j].Type
	})

	var out []catalog.Phase
	for _, ps := range keys {
		times := counts[ps]
		if len(times) < opts.MinPeers {
			continue
		}
		weight := float64(len(times)) / float64(opts.MaxPeersForWeight)
		if weight > 1 {
			weight = 1
		}
		out = append(out, catalog.Phase{
			EventID:       n.RefEventID,
			StationID:     ps.StationID,
			Type:          ps.Type,
			PickTime:      medianTime(times),
			APrioriWeight: weight,
			IsTheoretical: true,
		})
	}
	return out
}

// medianTime returns the median of an unsorted, non-empty time slice.
func medianTime(times []time.Time) time.Time {
	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted[len(sorted)/2]
}
