package reloc

import (
	"errors"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/cluster"
	"github.com/dikadissss/scrtdd/dd"
	"github.com/dikadissss/scrtdd/partials"
	"github.com/dikadissss/scrtdd/ttt"
)

// RelocateMultiEvents relocates every event in cat against one
// clustering pass (original_source/libs/hdd/hypodd.h's "multi-event"
// mode). fixed marks event IDs excluded from the solved
// unknowns; nil or empty fixes none. xcorr may be nil to disable
// cross-correlation rows entirely.
func RelocateMultiEvents(
	cat *catalog.Catalog,
	provider ttt.Provider,
	xcorr dd.XCorrLookup,
	fixed map[string]bool,
	clusterOpts cluster.Options,
	solverOpts dd.SolverOptions,
) (*catalog.Catalog, *Diagnostics, error) {
	diag := newDiagnostics(solverOpts.Verbose)

	var neighbourSets []cluster.Neighbours
	for _, id := range cat.EventIDs() {
		diag.EventsAttempted++
		diag.log.begin(id)
		n, err := cluster.SelectNeighbours(cat, id, clusterOpts)
		if err != nil {
			if errors.Is(err, cluster.ErrNotEnoughNeighbours) {
				diag.NotEnoughNeighbours = append(diag.NotEnoughNeighbours, id)
				diag.log.flushError(id, err)
				continue
			}
			return nil, diag, err
		}
		diag.log.append(id, "accepted %d neighbours", len(n.Peers))
		diag.log.success(id)
		neighbourSets = append(neighbourSets, n)
	}
	if len(neighbourSets) == 0 {
		return cat, diag, nil
	}

	result, err := relocate(cat, neighbourSets, fixed, provider, xcorr, solverOpts, diag)
	if err != nil {
		return nil, diag, err
	}
	diag.EventsRelocated = len(neighbourSets)
	return result, diag, nil
}

// RelocateSingleEvent relocates single against two clustering passes,
// matching hypodd.h's single-event API: clusterOptsFirstPass selects the
// neighbours that become fixed anchors, clusterOptsSecondPass selects
// the neighbours that become single's observation set.
func RelocateSingleEvent(
	cat *catalog.Catalog,
	single string,
	provider ttt.Provider,
	xcorr dd.XCorrLookup,
	clusterOptsFirstPass, clusterOptsSecondPass cluster.Options,
	solverOpts dd.SolverOptions,
) (*catalog.Event, *Diagnostics, error) {
	diag := newDiagnostics(solverOpts.Verbose)
	diag.EventsAttempted = 1
	diag.log.begin(single)

	first, err := cluster.SelectNeighbours(cat, single, clusterOptsFirstPass)
	if err != nil {
		if errors.Is(err, cluster.ErrNotEnoughNeighbours) {
			diag.NotEnoughNeighbours = append(diag.NotEnoughNeighbours, single)
		}
		diag.log.flushError(single, err)
		return nil, diag, err
	}
	fixed := make(map[string]bool, len(first.Peers))
	for _, p := range first.Peers {
		fixed[p.EventID] = true
	}

	second, err := cluster.SelectNeighbours(cat, single, clusterOptsSecondPass)
	if err != nil {
		if errors.Is(err, cluster.ErrNotEnoughNeighbours) {
			diag.NotEnoughNeighbours = append(diag.NotEnoughNeighbours, single)
		}
		diag.log.flushError(single, err)
		return nil, diag, err
	}

	result, err := relocate(cat, []cluster.Neighbours{second}, fixed, provider, xcorr, solverOpts, diag)
	if err != nil {
		diag.log.flushError(single, err)
		return nil, diag, err
	}
	diag.log.success(single)
	diag.EventsRelocated = 1

	ev, ok := result.Event(single)
	if !ok {
		return nil, diag, ErrEventVanished
	}
	return &ev, diag, nil
}

// relocate runs SolverOptions.AlgoIterations outer iterations against
// neighbourSets, carrying residual down-weighting forward by keying on
// dd.ObsKey since DDSystem row indices aren't stable across iterations.
// It stops early, without error, if an
// iteration's assembly yields no observations at all.
func relocate(
	cat *catalog.Catalog,
	neighbourSets []cluster.Neighbours,
	fixed map[string]bool,
	provider ttt.Provider,
	xcorr dd.XCorrLookup,
	opts dd.SolverOptions,
	diag *Diagnostics,
) (*catalog.Catalog, error) {
	current := cat
	var weightOverride map[dd.ObsKey]float64
	var lastInfo dd.SolveInfo

	for iter := 0; iter < opts.AlgoIterations; iter++ {
		withTheoretical := withSynthesizedPhases(current, neighbourSets, provider, opts.Theoretical)
		builder := &dd.ObservationBuilder{
			Catalog: withTheoretical, Provider: provider, XCorr: xcorr,
			Fixed: fixed, WeightOverride: weightOverride,
		}
		sys, err := builder.Build(neighbourSets, opts)
		if sys != nil {
			diag.OutOfGridRangeRows += sys.RowsDroppedOutOfRange
		}
		if err != nil {
			if errors.Is(err, dd.ErrNoObservations) {
				break // nothing left to solve; keep the last catalog state
			}
			return current, err
		}

		m, info, err := dd.Solve(sys, opts, iter)
		if err != nil {
			return current, err
		}
		lastInfo = info
		diag.OuterIterations++
		diag.FinalObservationCount = sys.NObs

		deltas := deltasFromM(current, sys, m)
		current = current.WithRelocatedEvents(deltas)

		weightOverride = nextWeightOverride(sys, m, opts, iter)
	}

	diag.SolverConverged = lastInfo.Converged
	diag.FinalResidualNorm = lastInfo.FinalResidualNorm
	return current, nil
}

// withSynthesizedPhases returns cat unchanged when theoretical phase
// synthesis is disabled; otherwise it returns a cloned catalog with one
// artificial phase (spec.md §4.7) added per reference event for every
// (station, phaseType) absent from that event's own picks but present
// in at least opts.MinPeers of its accepted neighbours. The clone is
// transient: it feeds this iteration's ObservationBuilder.Build only,
// never WithRelocatedEvents, so synthesis is recomputed fresh from the
// current hypocentres every outer iteration rather than accumulating.
// Each synthesized (station, phaseType) is also appended, once, to the
// Shared list of every peer in neighbourSets that picked it, so Build
// pairs it with that peer; those Shared entries persist across
// iterations, and Build skips one whose theoretical phase is absent.
func withSynthesizedPhases(cat *catalog.Catalog, neighbourSets []cluster.Neighbours, provider ttt.Provider, opts cluster.TheoreticalOptions) *catalog.Catalog {
	if !opts.Enabled {
		return cat
	}
	out := cat.WithRelocatedEvents(nil)
	for _, n := range neighbourSets {
		ref, ok := out.Event(n.RefEventID)
		if !ok {
			continue
		}
		predict := func(peerEventID, stationID string, ptype catalog.PhaseType) (time.Time, bool) {
			peer, ok := out.Event(peerEventID)
			if !ok {
				return time.Time{}, false
			}
			res, err := provider.Compute(ref.Lat, ref.Lon, ref.Depth, stationID, ptype)
			if err != nil {
				return time.Time{}, false
			}
			return peer.OriginTime.Add(time.Duration(res.TravelTime * float64(time.Second))), true
		}
		for _, ph := range cluster.SynthesizeTheoretical(out, n, opts, predict) {
			_ = out.AddPhase(ph) // can only fail on a referential-integrity bug; nothing to recover
			ps := cluster.PhaseStation{StationID: ph.StationID, Type: ph.Type}
			for j := range n.Peers {
				peer := &n.Peers[j]
				if _, ok := out.Phase(peer.EventID, ps.StationID, ps.Type); !ok {
					continue
				}
				listed := false
				for _, s := range peer.Shared {
					listed = listed || s == ps
				}
				if !listed {
					peer.Shared = append(peer.Shared, ps)
				}
			}
		}
	}
	return out
}

// deltasFromM converts a solved m vector (east/north/down km, origin-time
// seconds per non-fixed event) into catalog.EventDelta records via the
// inverse local transform about this iteration's centroid.
func deltasFromM(cat *catalog.Catalog, sys *dd.DDSystem, m []float64) []catalog.EventDelta {
	lats := make([]float64, sys.NEvts)
	lons := make([]float64, sys.NEvts)
	depths := make([]float64, sys.NEvts)
	for i, id := range sys.EventIDs {
		ev, _ := cat.Event(id)
		lats[i], lons[i], depths[i] = ev.Lat, ev.Lon, ev.Depth
	}
	centroid := partials.NewCentroid(lats, lons, depths)

	deltas := make([]catalog.EventDelta, 0, sys.NEvts)
	for i, id := range sys.EventIDs {
		if sys.Fixed[i] {
			continue
		}
		ev, ok := cat.Event(id)
		if !ok {
			continue
		}
		x0, y0, z0 := centroid.ToLocal(ev.Lat, ev.Lon, ev.Depth)
		base := i * 4
		dx, dy, dz, dt := m[base], m[base+1], m[base+2], m[base+3]
		newLat, newLon, newDepth := centroid.FromLocal(x0+dx, y0+dy, z0+dz)
		deltas = append(deltas, catalog.EventDelta{
			EventID:    id,
			DLatDeg:    newLat - ev.Lat,
			DLonDeg:    newLon - ev.Lon,
			DDepthKm:   newDepth - ev.Depth,
			DOriginSec: dt,
		})
	}
	return deltas
}

// nextWeightOverride computes the bi-weight down-weighted weight for
// every observation row of sys, keyed by dd.ObsKey so the following
// outer iteration's freshly-built DDSystem can look it up despite row
// indices shifting.
func nextWeightOverride(sys *dd.DDSystem, m []float64, opts dd.SolverOptions, iter int) map[dd.ObsKey]float64 {
	alpha := dd.DownWeightingAlpha(opts, iter)
	residuals := sys.Residuals(m)
	// BiWeight must start from each row's a-priori weight, not sys.W —
	// sys.W already carries the previous iteration's WeightOverride, and
	// reapplying the bi-weight onto an already down-weighted value would
	// compound monotonically toward zero every iteration instead of
	// recomputing from wApriori each time (spec.md §4.5).
	reweighted := dd.BiWeight(sys.AprioriW[:sys.NObs], residuals, alpha)

	override := make(map[dd.ObsKey]float64, sys.NObs)
	for row := 0; row < sys.NObs; row++ {
		ref, peer, sta, phase := sys.ObservationKey(row)
		override[dd.ObsKey{RefEventID: ref, PeerEventID: peer, StationID: sta, Phase: phase}] = reweighted[row]
	}
	return override
}
