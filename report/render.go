package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/partials"
	"github.com/dikadissss/scrtdd/reloc"
)

// Render produces a deterministic textual summary of a relocation run:
// per-event deltas, RMS residuals, and observation counts, computed as a
// pure function of before, after, and diag. Event lines are sorted by ID
// so output is reproducible across runs.
func Render(before, after *catalog.Catalog, diag *reloc.Diagnostics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "relocation run %s\n", diag.RunID)
	fmt.Fprintf(&b, "events attempted=%d relocated=%d outer-iterations=%d\n",
		diag.EventsAttempted, diag.EventsRelocated, diag.OuterIterations)
	fmt.Fprintf(&b, "solver converged=%v final-residual-rms=%s out-of-range-rows=%d\n",
		diag.SolverConverged, formatRMS(diag), diag.OutOfGridRangeRows)
	if len(diag.NotEnoughNeighbours) > 0 {
		ids := append([]string(nil), diag.NotEnoughNeighbours...)
		sort.Strings(ids)
		fmt.Fprintf(&b, "not-enough-neighbours: %s\n", strings.Join(ids, ", "))
	}
	b.WriteString("\n")

	ids := after.EventIDs()
	sort.Strings(ids)
	for _, id := range ids {
		afterEv, ok := after.Event(id)
		if !ok {
			continue
		}
		beforeEv, ok := before.Event(id)
		if !ok {
			continue
		}
		distKm := eventDistanceKm(beforeEv, afterEv)
		dtSec := afterEv.OriginTime.Sub(beforeEv.OriginTime).Seconds()
		obsCount := len(after.PhasesOf(id))
		fmt.Fprintf(&b, "%-16s  dEpi=%7.4fkm  dDepth=%+7.4fkm  dT=%+7.4fs  obs=%d\n",
			id, distKm, afterEv.Depth-beforeEv.Depth, dtSec, obsCount)
	}
	return b.String()
}

// eventDistanceKm is the epicentral distance between the before and
// after positions of the same event, projected about the before
// position as a local centroid; the depth change is reported separately.
func eventDistanceKm(before, after catalog.Event) float64 {
	c := partials.NewCentroid([]float64{before.Lat}, []float64{before.Lon}, []float64{before.Depth})
	return c.DistanceKm(before.Lat, before.Lon, 0, after.Lat, after.Lon, 0)
}

func formatRMS(diag *reloc.Diagnostics) string {
	if diag.FinalObservationCount == 0 {
		return "n/a"
	}
	rms := diag.FinalResidualNorm / math.Sqrt(float64(diag.FinalObservationCount))
	return fmt.Sprintf("%.6fs", rms)
}
