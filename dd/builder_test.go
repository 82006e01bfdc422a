package dd

import (
	"testing"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/cluster"
	"github.com/dikadissss/scrtdd/ttt"
)

// constProvider is a ttt.Provider returning a fixed travel time/azimuth
// /dip/velocity for every lookup, except stationID "OUT" which always
// fails (simulating OutOfGridRange, spec.md §7 / scenario S4).
type constProvider struct{}

func (constProvider) Compute(lat, lon, depth float64, stationID string, phase catalog.PhaseType) (ttt.Result, error) {
	if stationID == "OUT" {
		return ttt.Result{}, ttt.ErrOutOfRange
	}
	return ttt.Result{TravelTime: depth / 6.0, TakeoffAzimDeg: 45, TakeoffDipDeg: 30, VelocityAtSrc: 6.0}, nil
}

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(cat.AddStation(catalog.Station{ID: "STA1", Lat: 0, Lon: 0}))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	must(cat.AddEvent(catalog.Event{ID: "E1", OriginTime: base, Lat: 0, Lon: 0, Depth: 5}))
	must(cat.AddEvent(catalog.Event{ID: "E2", OriginTime: base, Lat: 0.01, Lon: 0, Depth: 5}))
	must(cat.AddPhase(catalog.Phase{EventID: "E1", StationID: "STA1", Type: catalog.P, PickTime: base.Add(2 * time.Second), APrioriWeight: 1}))
	must(cat.AddPhase(catalog.Phase{EventID: "E2", StationID: "STA1", Type: catalog.P, PickTime: base.Add(2050 * time.Millisecond), APrioriWeight: 1}))
	return cat
}

func TestBuildSatisfiesDimensionInvariant(t *testing.T) {
	cat := buildTestCatalog(t)
	neighbours := []cluster.Neighbours{{
		RefEventID: "E1",
		Peers: []cluster.Peer{{
			EventID: "E2", DistanceKm: 1,
			Shared: []cluster.PhaseStation{{StationID: "STA1", Type: catalog.P}},
		}},
	}}
	b := &ObservationBuilder{Catalog: cat, Provider: constProvider{}}
	opts := DefaultOptions()
	sys, err := b.Build(neighbours, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(sys.G) != sys.NEvts*sys.NPhStas {
		t.Errorf("len(G) = %d, want NEvts*NPhStas = %d", len(sys.G), sys.NEvts*sys.NPhStas)
	}
	if len(sys.W) != sys.NObs+sys.NTTConstraints {
		t.Errorf("len(W) = %d, want NObs+NTTConstraints = %d", len(sys.W), sys.NObs+sys.NTTConstraints)
	}
	if len(sys.M) != sys.NEvts*4 {
		t.Errorf("len(M) = %d, want NEvts*4 = %d", len(sys.M), sys.NEvts*4)
	}
	if sys.NObs != 1 {
		t.Fatalf("NObs = %d, want 1", sys.NObs)
	}
}

func TestBuildDropsOutOfRangeRow(t *testing.T) {
	cat := catalog.New()
	if err := cat.AddStation(catalog.Station{ID: "OUT", Lat: 0, Lon: 0}); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := cat.AddEvent(catalog.Event{ID: "E1", OriginTime: base, Depth: 1000}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddEvent(catalog.Event{ID: "E2", OriginTime: base, Depth: 1000}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddPhase(catalog.Phase{EventID: "E1", StationID: "OUT", Type: catalog.P, PickTime: base, APrioriWeight: 1}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddPhase(catalog.Phase{EventID: "E2", StationID: "OUT", Type: catalog.P, PickTime: base, APrioriWeight: 1}); err != nil {
		t.Fatal(err)
	}
	neighbours := []cluster.Neighbours{{
		RefEventID: "E1",
		Peers: []cluster.Peer{{
			EventID: "E2",
			Shared:  []cluster.PhaseStation{{StationID: "OUT", Type: catalog.P}},
		}},
	}}
	b := &ObservationBuilder{Catalog: cat, Provider: constProvider{}}
	_, err := b.Build(neighbours, DefaultOptions())
	if err != ErrNoObservations {
		t.Fatalf("Build error = %v, want ErrNoObservations (row should be dropped as out-of-range)", err)
	}
}

func TestBiWeightCutoff(t *testing.T) {
	apriori := []float64{1, 1, 1}
	residuals := []float64{0.01, 0.01, 1.0} // last one is a 100x outlier
	alpha := 0.1
	w := BiWeight(apriori, residuals, alpha)
	if w[2] != 0 {
		t.Errorf("outlier weight = %v, want 0", w[2])
	}
	if w[0] <= 0 || w[0] > 1 {
		t.Errorf("inlier weight = %v, want in (0,1]", w[0])
	}
}

func TestBiWeightDisabledWhenAlphaZero(t *testing.T) {
	apriori := []float64{1, 2, 3}
	w := BiWeight(apriori, []float64{100, 100, 100}, 0)
	for i := range apriori {
		if w[i] != apriori[i] {
			t.Errorf("w[%d] = %v, want unchanged %v", i, w[i], apriori[i])
		}
	}
}

func TestDampingScheduleInterpolatesLinearly(t *testing.T) {
	opts := DefaultOptions()
	opts.DampingFactorStart = 1.0
	opts.DampingFactorEnd = 0.0
	opts.AlgoIterations = 5
	if d := DampingFactor(opts, 0); d != 1.0 {
		t.Errorf("DampingFactor(0) = %v, want 1.0", d)
	}
	if d := DampingFactor(opts, 4); d != 0.0 {
		t.Errorf("DampingFactor(4) = %v, want 0.0", d)
	}
	mid := DampingFactor(opts, 2)
	if mid <= 0 || mid >= 1 {
		t.Errorf("DampingFactor(2) = %v, want strictly between 0 and 1", mid)
	}
}

func TestObservationKeyStableAcrossRowReordering(t *testing.T) {
	sys := &DDSystem{
		PhStas:     []phStaKey{{StationID: "STA1", Type: catalog.P}},
		PhStaByObs: []int{0},
		RefEvent:   []string{"E1"},
		PeerEvent:  []string{"E2"},
	}
	ref, peer, sta, ptype := sys.ObservationKey(0)
	if ref != "E1" || peer != "E2" || sta != "STA1" || ptype != catalog.P {
		t.Errorf("ObservationKey = (%v,%v,%v,%v), want (E1,E2,STA1,P)", ref, peer, sta, ptype)
	}
}
