package report

import (
	"strings"
	"testing"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/reloc"
)

func buildBeforeAfter(t *testing.T) (*catalog.Catalog, *catalog.Catalog) {
	t.Helper()
	before := catalog.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := before.AddEvent(catalog.Event{ID: "E1", OriginTime: base, Lat: 0, Lon: 0, Depth: 5}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := before.AddStation(catalog.Station{ID: "STA1", Lat: 0, Lon: 1}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := before.AddPhase(catalog.Phase{EventID: "E1", StationID: "STA1", Type: catalog.P, PickTime: base.Add(time.Second)}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	after := before.WithRelocatedEvents([]catalog.EventDelta{
		{EventID: "E1", DLatDeg: 0.001, DLonDeg: -0.002, DDepthKm: 0.3, DOriginSec: 0.05},
	})
	return before, after
}

func TestRenderIncludesEveryEventAndIsDeterministic(t *testing.T) {
	before, after := buildBeforeAfter(t)
	diag := &reloc.Diagnostics{
		RunID: "test-run", EventsAttempted: 1, EventsRelocated: 1, OuterIterations: 5,
		SolverConverged: true, FinalResidualNorm: 0.02, FinalObservationCount: 4,
	}

	out1 := Render(before, after, diag)
	out2 := Render(before, after, diag)
	if out1 != out2 {
		t.Fatalf("Render is not deterministic across identical inputs")
	}
	if !strings.Contains(out1, "E1") {
		t.Errorf("output missing event E1:\n%s", out1)
	}
	if !strings.Contains(out1, "test-run") {
		t.Errorf("output missing RunID:\n%s", out1)
	}
	if !strings.Contains(out1, "obs=1") {
		t.Errorf("output missing observation count:\n%s", out1)
	}
}

func TestRenderReportsNotEnoughNeighbours(t *testing.T) {
	before, after := buildBeforeAfter(t)
	diag := &reloc.Diagnostics{
		RunID: "run2", NotEnoughNeighbours: []string{"E9", "E2"},
	}
	out := Render(before, after, diag)
	if !strings.Contains(out, "E9") || !strings.Contains(out, "E2") {
		t.Errorf("output missing not-enough-neighbours events:\n%s", out)
	}
}

func TestRenderHandlesZeroObservationsRMS(t *testing.T) {
	before, after := buildBeforeAfter(t)
	diag := &reloc.Diagnostics{RunID: "run3"}
	out := Render(before, after, diag)
	if !strings.Contains(out, "n/a") {
		t.Errorf("expected RMS n/a with zero observations:\n%s", out)
	}
}
