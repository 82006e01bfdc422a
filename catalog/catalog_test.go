package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

func mustEvent(id string) catalog.Event {
	return catalog.Event{ID: id, OriginTime: time.Unix(0, 0), Lat: 1, Lon: 2, Depth: 5}
}

func TestAddEventStationPhase(t *testing.T) {
	c := catalog.New()
	if err := c.AddEvent(mustEvent("e1")); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if err := c.AddEvent(mustEvent("e1")); !errors.Is(err, catalog.ErrDuplicateEvent) {
		t.Fatalf("expected ErrDuplicateEvent, got %v", err)
	}

	st := catalog.Station{ID: "NET.STA", Lat: 1, Lon: 2, Elevation: 100}
	if err := c.AddStation(st); err != nil {
		t.Fatalf("AddStation: %v", err)
	}

	ph := catalog.Phase{EventID: "e1", StationID: "NET.STA", Type: catalog.P, APrioriWeight: 1}
	if err := c.AddPhase(ph); err != nil {
		t.Fatalf("AddPhase: %v", err)
	}
	if err := c.AddPhase(ph); !errors.Is(err, catalog.ErrDuplicatePhase) {
		t.Fatalf("expected ErrDuplicatePhase, got %v", err)
	}

	bad := catalog.Phase{EventID: "missing", StationID: "NET.STA", Type: catalog.P, APrioriWeight: 1}
	if err := c.AddPhase(bad); !errors.Is(err, catalog.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}

	badWeight := catalog.Phase{EventID: "e1", StationID: "NET.STA", Type: catalog.S, APrioriWeight: 2}
	if err := c.AddPhase(badWeight); !errors.Is(err, catalog.ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}
}

func TestEventIDsSorted(t *testing.T) {
	c := catalog.New()
	for _, id := range []string{"e3", "e1", "e2"} {
		if err := c.AddEvent(mustEvent(id)); err != nil {
			t.Fatalf("AddEvent(%s): %v", id, err)
		}
	}
	got := c.EventIDs()
	want := []string{"e1", "e2", "e3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EventIDs() = %v, want %v", got, want)
		}
	}
}

// TestWithRelocatedEventsZeroIsIdempotent covers spec.md §8 invariant 5:
// applying an all-zero delta set leaves the catalog bit-identical.
func TestWithRelocatedEventsZeroIsIdempotent(t *testing.T) {
	c := catalog.New()
	_ = c.AddEvent(mustEvent("e1"))
	before, _ := c.Event("e1")

	out := c.WithRelocatedEvents([]catalog.EventDelta{{EventID: "e1"}})
	after, ok := out.Event("e1")
	if !ok {
		t.Fatalf("relocated catalog missing e1")
	}
	if after != before {
		t.Fatalf("zero delta changed event: before=%+v after=%+v", before, after)
	}
}

func TestWithRelocatedEventsAppliesDelta(t *testing.T) {
	c := catalog.New()
	_ = c.AddEvent(mustEvent("e1"))

	out := c.WithRelocatedEvents([]catalog.EventDelta{
		{EventID: "e1", DLatDeg: 0.01, DLonDeg: -0.02, DDepthKm: 1.5, DOriginSec: 0.05},
	})
	after, _ := out.Event("e1")
	if after.Lat != 1.01 || after.Lon != 1.98 || after.Depth != 6.5 {
		t.Fatalf("unexpected relocated event: %+v", after)
	}
	orig, _ := c.Event("e1")
	if orig.Lat != 1 {
		t.Fatalf("original catalog mutated: %+v", orig)
	}
}

func TestDefaultPhaseAliasSet(t *testing.T) {
	as := catalog.DefaultPhaseAliasSet()
	for _, tc := range []struct {
		label string
		want  catalog.PhaseType
		ok    bool
	}{
		{"Pg", catalog.P, true},
		{"sx", catalog.S, true},
		{"Lg", 0, false},
	} {
		got, ok := as.Resolve(tc.label)
		if ok != tc.ok {
			t.Fatalf("Resolve(%s) ok = %v, want %v", tc.label, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Resolve(%s) = %v, want %v", tc.label, got, tc.want)
		}
	}
}
