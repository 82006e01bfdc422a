package dd

import (
	"math"
	"testing"
)

// TestSolveMinimumNormSolution exercises Solve against a minimal,
// hand-built rank-deficient system: one row tying two events' east
// deltas together via (x0 - x1 = 0.5). With no damping and no L2
// normalisation, CGLS on the normal equations converges to the
// minimum-norm solution x0=0.25, x1=-0.25.
func TestSolveMinimumNormSolution(t *testing.T) {
	sys := &DDSystem{
		NEvts:   2,
		NPhStas: 1,
		NObs:    1,
		G: [][4]float64{
			{1, 0, 0, 0},
			{1, 0, 0, 0},
		},
		W:          []float64{1},
		D:          []float64{0.5},
		EvByObs:    [2][]int{{0}, {1}},
		PhStaByObs: []int{0},
		M:          make([]float64, 8),
	}
	opts := DefaultOptions()
	opts.L2Normalization = false
	opts.DampingFactorStart = 0
	opts.DampingFactorEnd = 0
	opts.ATol = 1e-12

	m, info, err := Solve(sys, opts, 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(m[0]-0.25) > 1e-6 {
		t.Errorf("m[0] = %v, want ~0.25", m[0])
	}
	if math.Abs(m[4]-(-0.25)) > 1e-6 {
		t.Errorf("m[4] = %v, want ~-0.25", m[4])
	}
	if info.Iterations == 0 {
		t.Error("expected at least one solver iteration")
	}
}

func TestSolveEmptySystem(t *testing.T) {
	sys := &DDSystem{}
	if _, _, err := Solve(sys, DefaultOptions(), 0); err != ErrEmptySystem {
		t.Fatalf("Solve error = %v, want ErrEmptySystem", err)
	}
}

func TestResidualsMatchObservedMinusPredicted(t *testing.T) {
	sys := &DDSystem{
		NEvts:      2,
		NPhStas:    1,
		NObs:       1,
		G:          [][4]float64{{1, 0, 0, 0}, {1, 0, 0, 0}},
		W:          []float64{1},
		D:          []float64{0.5},
		EvByObs:    [2][]int{{0}, {1}},
		PhStaByObs: []int{0},
	}
	m := make([]float64, 8)
	m[0] = 0.25
	m[4] = -0.25
	r := sys.Residuals(m)
	if math.Abs(r[0]) > 1e-9 {
		t.Errorf("residual = %v, want ~0 for the exact solution", r[0])
	}
}
