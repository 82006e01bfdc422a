package dd

import (
	"context"

	"github.com/dikadissss/scrtdd/cluster"
)

// SolverType selects the iterative kernel a run's configuration names.
// Both values route through the same bidiagonalization-
// free CGLS kernel in solve.go (see that file's doc comment); the
// distinction is preserved so callers and diagnostics can still label
// which one a run asked for.
type SolverType int

const (
	// LSMR is the default solver kernel.
	LSMR SolverType = iota
	// LSQR is the alternative solver kernel.
	LSQR
)

// String renders the solver type by its conventional name.
func (t SolverType) String() string {
	if t == LSQR {
		return "LSQR"
	}
	return "LSMR"
}

// SolverOptions configures both the inner iterative solve and the outer
// relocation loop's damping/down-weighting schedule. Ctx and Verbose
// mirror flow.FlowOptions in the teacher library.
type SolverOptions struct {
	Ctx     context.Context
	Verbose bool

	Type               SolverType
	L2Normalization    bool
	SolverIterations   int // 0 = auto
	AlgoIterations     int
	TTConstraint       bool
	TTConstraintWeight float64

	DampingFactorStart float64
	DampingFactorEnd   float64

	DownWeightingByResidualStart float64
	DownWeightingByResidualEnd   float64

	UsePickUncertainty bool
	AbsTTDiffObsWeight float64
	XcorrObsWeight     float64

	ATol, BTol float64
	ConLim     float64

	// Theoretical configures spec.md §4.7 artificial-phase synthesis: reloc's
	// outer loop calls cluster.SynthesizeTheoretical once per reference
	// event per iteration when Theoretical.Enabled, feeding the result
	// into this iteration's xcorr-based observation rows.
	Theoretical cluster.TheoreticalOptions
}

// DefaultOptions returns the solver's documented defaults.
func DefaultOptions() SolverOptions {
	return SolverOptions{
		Ctx:                          context.Background(),
		Type:                         LSMR,
		L2Normalization:              true,
		SolverIterations:             0,
		AlgoIterations:               20,
		TTConstraint:                 true,
		TTConstraintWeight:           1e-3,
		DampingFactorStart:           0.3,
		DampingFactorEnd:             0.01,
		DownWeightingByResidualStart: 0,
		DownWeightingByResidualEnd:   0,
		UsePickUncertainty:           false,
		AbsTTDiffObsWeight:           1,
		XcorrObsWeight:               1,
		ATol:                         1e-6,
		BTol:                         1e-6,
		ConLim:                       1e8,
		Theoretical:                  cluster.DefaultTheoreticalOptions(),
	}
}
