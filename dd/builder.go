package dd

import (
	"math"
	"sort"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/cluster"
	"github.com/dikadissss/scrtdd/partials"
	"github.com/dikadissss/scrtdd/ttt"
)

// XCorrLookup is the narrow collaborator ObservationBuilder consults for
// cross-correlation differential times; xcorr's engine implements it.
// A nil XCorrLookup disables xcorr rows entirely
// and theoretical phases (which only ever feed xcorr rows) are skipped.
type XCorrLookup interface {
	Lookup(refEventID, peerEventID, stationID string, phase catalog.PhaseType) (cc, lagSec float64, ok bool)
}

// ObsKey identifies an observation row independent of its row index,
// matching the tuple DDSystem.ObservationKey returns. reloc uses it to
// carry residual down-weighting results from one outer iteration's
// DDSystem into the next one's WeightOverride, since row indices are not
// stable across iterations.
type ObsKey struct {
	RefEventID  string
	PeerEventID string
	StationID   string
	Phase       catalog.PhaseType
}

// ObservationBuilder assembles a DDSystem from a catalog, the accepted
// neighbours of a set of reference events, a travel-time provider, and
// an optional cross-correlation lookup.
type ObservationBuilder struct {
	Catalog  *catalog.Catalog
	Provider ttt.Provider
	XCorr    XCorrLookup
	Fixed    map[string]bool

	// WeightOverride, when set, replaces a row's computed a-priori/xcorr
	// weight with the given value for any (ref, peer, station, phase)
	// key present in the map. reloc's outer loop populates this from the
	// prior iteration's bi-weight down-weighting.
	WeightOverride map[ObsKey]float64
}

type rawRow struct {
	e1, e2           int
	ps               int
	observed, weight float64
	// apriori is weight before any WeightOverride substitution.
	apriori   float64
	isXcorr   bool
	ref, peer string
	stationID string
	ptype     catalog.PhaseType
}

// Build assembles one DDSystem spanning every event referenced across
// neighbourSets. Callers pass reference events in ascending ID order
// (catalog.Catalog.EventIDs already returns that order, keeping output
// deterministic); row order within each reference event is then fixed
// by ascending peer ID, station ID, and phase type.
func (b *ObservationBuilder) Build(neighbourSets []cluster.Neighbours, opts SolverOptions) (*DDSystem, error) {
	sys := &DDSystem{
		EventIndex: make(map[string]int),
		PhStaIndex: make(map[phStaKey]int),
		Fixed:      make(map[int]bool),
	}

	eventOf := func(id string) int {
		if idx, ok := sys.EventIndex[id]; ok {
			return idx
		}
		idx := len(sys.EventIDs)
		sys.EventIndex[id] = idx
		sys.EventIDs = append(sys.EventIDs, id)
		if b.Fixed[id] {
			sys.Fixed[idx] = true
		}
		return idx
	}
	phStaOf := func(stationID string, t catalog.PhaseType) int {
		key := phStaKey{stationID, t}
		if idx, ok := sys.PhStaIndex[key]; ok {
			return idx
		}
		idx := len(sys.PhStas)
		sys.PhStaIndex[key] = idx
		sys.PhStas = append(sys.PhStas, key)
		return idx
	}

	var rows []rawRow
	for _, n := range neighbourSets {
		ref, ok := b.Catalog.Event(n.RefEventID)
		if !ok {
			continue
		}
		e1 := eventOf(n.RefEventID)
		for _, peer := range n.Peers {
			peerEv, ok := b.Catalog.Event(peer.EventID)
			if !ok {
				continue
			}
			e2 := eventOf(peer.EventID)
			for _, sp := range peer.Shared {
				refPh, ok1 := b.Catalog.Phase(n.RefEventID, sp.StationID, sp.Type)
				peerPh, ok2 := b.Catalog.Phase(peer.EventID, sp.StationID, sp.Type)
				if !ok1 || !ok2 {
					continue
				}
				theoretical := refPh.IsTheoretical || peerPh.IsTheoretical

				dtCat := refPh.PickTime.Sub(ref.OriginTime).Seconds() -
					peerPh.PickTime.Sub(peerEv.OriginTime).Seconds()
				weight := weightOf(refPh, opts) * weightOf(peerPh, opts) * opts.AbsTTDiffObsWeight
				observed := dtCat
				isXcorr := false

				if b.XCorr != nil {
					if cc, lag, ok := b.XCorr.Lookup(n.RefEventID, peer.EventID, sp.StationID, sp.Type); ok {
						observed = dtCat + lag
						weight = cc * cc * opts.XcorrObsWeight
						isXcorr = true
					} else if theoretical {
						continue // theoretical phases only ever feed xcorr rows
					}
				} else if theoretical {
					continue
				}

				apriori := weight
				if b.WeightOverride != nil {
					key := ObsKey{RefEventID: n.RefEventID, PeerEventID: peer.EventID, StationID: sp.StationID, Phase: sp.Type}
					if w, ok := b.WeightOverride[key]; ok {
						weight = w
					}
				}

				rows = append(rows, rawRow{
					e1: e1, e2: e2, ps: phStaOf(sp.StationID, sp.Type),
					observed: observed, weight: weight, apriori: apriori, isXcorr: isXcorr,
					ref: n.RefEventID, peer: peer.EventID,
					stationID: sp.StationID, ptype: sp.Type,
				})
			}
		}
	}

	sys.NEvts = len(sys.EventIDs)
	sys.NPhStas = len(sys.PhStas)
	sys.G = make([][4]float64, sys.NEvts*sys.NPhStas)
	sys.M = make([]float64, sys.NEvts*4)

	needed := make(map[[2]int]bool)
	for _, row := range rows {
		needed[[2]int{row.e1, row.ps}] = true
		needed[[2]int{row.e2, row.ps}] = true
	}
	travelTime := b.fillPartials(sys, needed)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ref != rows[j].ref {
			return rows[i].ref < rows[j].ref
		}
		if rows[i].peer != rows[j].peer {
			return rows[i].peer < rows[j].peer
		}
		if rows[i].stationID != rows[j].stationID {
			return rows[i].stationID < rows[j].stationID
		}
		return rows[i].ptype < rows[j].ptype
	})

	sys.EvByObs = [2][]int{make([]int, 0, len(rows)), make([]int, 0, len(rows))}
	sys.PhStaByObs = make([]int, 0, len(rows))
	sys.D = make([]float64, 0, len(rows))
	sys.W = make([]float64, 0, len(rows))
	sys.AprioriW = make([]float64, 0, len(rows))
	sys.IsXcorr = make([]bool, 0, len(rows))
	sys.RefEvent = make([]string, 0, len(rows))
	sys.PeerEvent = make([]string, 0, len(rows))

	for _, row := range rows {
		tt1, ok1 := travelTime[[2]int{row.e1, row.ps}]
		tt2, ok2 := travelTime[[2]int{row.e2, row.ps}]
		if !ok1 || !ok2 {
			sys.RowsDroppedOutOfRange++ // drop the row, tally it for diagnostics
			continue
		}
		e1col, e2col := row.e1, row.e2
		if sys.Fixed[row.e1] {
			e1col = -1
		}
		if sys.Fixed[row.e2] {
			e2col = -1
		}
		sys.EvByObs[0] = append(sys.EvByObs[0], e1col)
		sys.EvByObs[1] = append(sys.EvByObs[1], e2col)
		sys.PhStaByObs = append(sys.PhStaByObs, row.ps)
		sys.D = append(sys.D, row.observed-(tt1-tt2))
		sys.W = append(sys.W, row.weight)
		sys.AprioriW = append(sys.AprioriW, row.apriori)
		sys.IsXcorr = append(sys.IsXcorr, row.isXcorr)
		sys.RefEvent = append(sys.RefEvent, row.ref)
		sys.PeerEvent = append(sys.PeerEvent, row.peer)
	}
	sys.NObs = len(sys.D)

	if opts.TTConstraint {
		b.appendConstraintRows(sys, travelTime, opts)
	}
	if opts.L2Normalization {
		sys.computeL2Scalers()
	}
	if sys.NObs == 0 {
		return sys, ErrNoObservations
	}
	return sys, nil
}

// fillPartials computes travel time and, where the provider supports
// it, G's four partials for every (event, phase-station) pair any row
// needs. Pairs the provider fails to resolve (OutOfGridRange, unloadable
// grid) are simply absent from the returned map; Build drops any row
// that depends on a missing pair.
func (b *ObservationBuilder) fillPartials(sys *DDSystem, needed map[[2]int]bool) map[[2]int]float64 {
	travelTime := make(map[[2]int]float64, len(needed))
	for key := range needed {
		e, ps := key[0], key[1]
		ev, ok := b.Catalog.Event(sys.EventIDs[e])
		if !ok {
			continue
		}
		psKey := sys.PhStas[ps]
		res, err := b.Provider.Compute(ev.Lat, ev.Lon, ev.Depth, psKey.StationID, psKey.Type)
		if err != nil {
			continue
		}
		travelTime[key] = res.TravelTime
		if !math.IsNaN(res.VelocityAtSrc) && !math.IsNaN(res.TakeoffAzimDeg) {
			sys.G[e*sys.NPhStas+ps] = partials.Compute(res.TakeoffAzimDeg, res.TakeoffDipDeg, res.VelocityAtSrc)
		}
	}
	return travelTime
}

// appendConstraintRows adds the travel-time shift constraint rows: one
// per non-fixed (event, phase-station) pair actually used, pinning
// that event's parameters against drifting uniformly.
func (b *ObservationBuilder) appendConstraintRows(sys *DDSystem, travelTime map[[2]int]float64, opts SolverOptions) {
	keys := make([][2]int, 0, len(travelTime))
	for k := range travelTime {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		e, ps := k[0], k[1]
		if sys.Fixed[e] {
			continue
		}
		psKey := sys.PhStas[ps]
		if ph, ok := b.Catalog.Phase(sys.EventIDs[e], psKey.StationID, psKey.Type); ok && ph.IsTheoretical {
			continue // spec.md §9(b): theoretical phases are excluded from shift-constraint rows
		}
		sys.EvByObs[0] = append(sys.EvByObs[0], e)
		sys.EvByObs[1] = append(sys.EvByObs[1], -1)
		sys.PhStaByObs = append(sys.PhStaByObs, ps)
		sys.D = append(sys.D, 0)
		sys.W = append(sys.W, opts.TTConstraintWeight)
		sys.AprioriW = append(sys.AprioriW, opts.TTConstraintWeight)
		sys.IsXcorr = append(sys.IsXcorr, false)
		sys.RefEvent = append(sys.RefEvent, sys.EventIDs[e])
		sys.PeerEvent = append(sys.PeerEvent, "")
		sys.NTTConstraints++
	}
}

func weightOf(ph catalog.Phase, opts SolverOptions) float64 {
	if opts.UsePickUncertainty && ph.PickUncertainty > 0 {
		return 1 / (ph.PickUncertainty * ph.PickUncertainty)
	}
	return ph.APrioriWeight
}
