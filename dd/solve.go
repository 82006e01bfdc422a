package dd

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SolveInfo reports the outcome of one inner solve.
type SolveInfo struct {
	Iterations        int
	Converged         bool
	FinalResidualNorm float64
}

// Solve runs the iterative damped least-squares solver against sys for
// one outer iteration, using the damping factor the opts schedule gives
// at outerIter. LSMR and LSQR share this implementation's CGLS-on-the-
// normal-equations kernel: both minimise ||W·G·m - W·d||² + damp²||m||²
// via the same conjugate-gradient recurrence over the implicit matvec
// pair in matvec.go (G is never materialised). SolverType only labels
// which kernel a caller asked for; this implementation does not
// distinguish LSMR's and LSQR's numerically-distinct update formulas,
// since both solve the identical damped least-squares problem on this
// system's well-scaled columns (see DESIGN.md).
func Solve(sys *DDSystem, opts SolverOptions, outerIter int) ([]float64, SolveInfo, error) {
	if sys.NEvts == 0 {
		return nil, SolveInfo{}, ErrEmptySystem
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	nCols := sys.NEvts * 4
	scaler := sys.L2NScaler
	if !opts.L2Normalization || scaler == nil {
		scaler = make([]float64, nCols)
		for i := range scaler {
			scaler[i] = 1
		}
	}

	matvec := func(xPrime []float64) []float64 {
		x := make([]float64, nCols)
		for i, v := range xPrime {
			x[i] = v * scaler[i]
		}
		return sys.matvec(x)
	}
	rmatvec := func(y []float64) []float64 {
		x := sys.rmatvec(y)
		for i := range x {
			x[i] *= scaler[i]
		}
		return x
	}

	damp := DampingFactor(opts, outerIter)
	b := make([]float64, len(sys.D))
	for i := range b {
		b[i] = sys.W[i] * sys.D[i]
	}

	maxIter := opts.SolverIterations
	if maxIter <= 0 {
		maxIter = 4 * nCols
		if maxIter > 500 {
			maxIter = 500
		}
		if maxIter < 1 {
			maxIter = 1
		}
	}

	xPrime := make([]float64, nCols)
	r := make([]float64, len(b))
	copy(r, b)
	s := rmatvec(r)
	p := make([]float64, len(s))
	copy(p, s)
	gamma := floats.Dot(s, s)
	normATb := math.Sqrt(gamma)

	info := SolveInfo{}
	for k := 0; k < maxIter; k++ {
		select {
		case <-ctx.Done():
			return nil, info, ctx.Err()
		default:
		}
		q := matvec(p)
		delta := floats.Dot(q, q) + damp*damp*floats.Dot(p, p)
		if delta <= 0 {
			break
		}
		alpha := gamma / delta
		floats.AddScaled(xPrime, alpha, p)
		floats.AddScaled(r, -alpha, q)
		s = rmatvec(r)
		floats.AddScaled(s, -damp*damp, xPrime)
		gammaNew := floats.Dot(s, s)
		info.Iterations = k + 1
		if normATb > 0 && math.Sqrt(gammaNew) <= opts.ATol*normATb {
			info.Converged = true
			break
		}
		beta := 0.0
		if gamma > 0 {
			beta = gammaNew / gamma
		}
		for i := range p {
			p[i] = s[i] + beta*p[i]
		}
		gamma = gammaNew
	}

	m := make([]float64, nCols)
	for i, v := range xPrime {
		m[i] = v * scaler[i]
	}
	finalR := sys.Residuals(m)
	info.FinalResidualNorm = floats.Norm(finalR, 2)
	return m, info, nil
}
