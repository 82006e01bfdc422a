package dd

import "math"

// matvec computes y = W·G·x over every row (observations plus
// travel-time-constraint rows): the solver's implicit forward operator.
func (sys *DDSystem) matvec(x []float64) []float64 {
	y := sys.matvecUnweighted(x)
	for i := range y {
		y[i] *= sys.W[i]
	}
	return y
}

func (sys *DDSystem) matvecUnweighted(x []float64) []float64 {
	n := sys.NObs + sys.NTTConstraints
	y := make([]float64, n)
	for r := 0; r < n; r++ {
		ps := sys.PhStaByObs[r]
		var val float64
		if e1 := sys.EvByObs[0][r]; e1 >= 0 {
			g := sys.G[e1*sys.NPhStas+ps]
			base := e1 * 4
			val += g[0]*x[base] + g[1]*x[base+1] + g[2]*x[base+2] + g[3]*x[base+3]
		}
		if e2 := sys.EvByObs[1][r]; e2 >= 0 {
			g := sys.G[e2*sys.NPhStas+ps]
			base := e2 * 4
			val -= g[0]*x[base] + g[1]*x[base+1] + g[2]*x[base+2] + g[3]*x[base+3]
		}
		y[r] = val
	}
	return y
}

// rmatvec computes x = Gᵀ·W·y, the solver's adjoint operator.
func (sys *DDSystem) rmatvec(y []float64) []float64 {
	x := make([]float64, sys.NEvts*4)
	n := sys.NObs + sys.NTTConstraints
	for r := 0; r < n; r++ {
		wy := sys.W[r] * y[r]
		if wy == 0 {
			continue
		}
		ps := sys.PhStaByObs[r]
		if e1 := sys.EvByObs[0][r]; e1 >= 0 {
			g := sys.G[e1*sys.NPhStas+ps]
			base := e1 * 4
			x[base] += wy * g[0]
			x[base+1] += wy * g[1]
			x[base+2] += wy * g[2]
			x[base+3] += wy * g[3]
		}
		if e2 := sys.EvByObs[1][r]; e2 >= 0 {
			g := sys.G[e2*sys.NPhStas+ps]
			base := e2 * 4
			x[base] -= wy * g[0]
			x[base+1] -= wy * g[1]
			x[base+2] -= wy * g[2]
			x[base+3] -= wy * g[3]
		}
	}
	return x
}

// Residuals returns r_i = d_i - (G·m)_i for the observation rows only
// (excluding travel-time-constraint rows): the quantity the residual
// down-weighting step operates on.
func (sys *DDSystem) Residuals(m []float64) []float64 {
	y := sys.matvecUnweighted(m)
	r := make([]float64, sys.NObs)
	for i := 0; i < sys.NObs; i++ {
		r[i] = sys.D[i] - y[i]
	}
	return r
}

// computeL2Scalers fills L2NScaler with a per-column normalisation
// factor: for each column c, 1/||W·G[:,c]||₂; zero-norm (unused)
// columns get scaler 1.
func (sys *DDSystem) computeL2Scalers() {
	sums := make([]float64, sys.NEvts*4)
	n := sys.NObs + sys.NTTConstraints
	for r := 0; r < n; r++ {
		w := sys.W[r]
		if w == 0 {
			continue
		}
		ps := sys.PhStaByObs[r]
		for side, sign := range [2]float64{1, -1} {
			e := sys.EvByObs[side][r]
			if e < 0 {
				continue
			}
			g := sys.G[e*sys.NPhStas+ps]
			base := e * 4
			for k := 0; k < 4; k++ {
				v := w * g[k] * sign
				sums[base+k] += v * v
			}
		}
	}
	sys.L2NScaler = make([]float64, len(sums))
	for c, s := range sums {
		if s <= 0 {
			sys.L2NScaler[c] = 1
			continue
		}
		sys.L2NScaler[c] = 1 / math.Sqrt(s)
	}
}
