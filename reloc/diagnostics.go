package reloc

import "github.com/google/uuid"

// Diagnostics is reloc's per-run counters struct: it replaces
// process-wide mutable state with a value returned alongside the
// relocated catalog rather than aggregated behind the caller's back.
type Diagnostics struct {
	// RunID tags this run for log correlation.
	RunID string

	// EventsAttempted/EventsRelocated count reference events considered
	// versus successfully relocated.
	EventsAttempted int
	EventsRelocated int

	// NotEnoughNeighbours lists event IDs that failed clustering; the
	// event is left unrelocated.
	NotEnoughNeighbours []string

	// OutOfGridRangeRows sums dd.DDSystem.RowsDroppedOutOfRange across
	// every outer iteration of the run.
	OutOfGridRangeRows int

	// OuterIterations is the number of outer iterations actually run
	// (may be less than SolverOptions.AlgoIterations if assembly ran dry).
	OuterIterations int
	// SolverConverged and FinalResidualNorm reflect the last outer
	// iteration's dd.SolveInfo.
	SolverConverged   bool
	FinalResidualNorm float64
	// FinalObservationCount is the observation row count (excluding
	// travel-time-constraint rows) the last outer iteration solved
	// against, letting report.Render turn FinalResidualNorm into an RMS.
	FinalObservationCount int

	log *runLog
}

func newDiagnostics(verbose bool) *Diagnostics {
	return &Diagnostics{RunID: uuid.NewString(), log: newRunLog(verbose)}
}
