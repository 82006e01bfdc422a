package dd

import "math"

// BiWeight applies Tukey's bi-weight residual down-weighting: rows with
// |residual| < alpha are scaled by apriori*(1-(r/alpha)^2)^2, all others
// dropped to zero. alpha<=0 disables down-weighting and returns apriori
// unchanged.
func BiWeight(apriori, residuals []float64, alpha float64) []float64 {
	out := make([]float64, len(apriori))
	if alpha <= 0 {
		copy(out, apriori)
		return out
	}
	for i, r := range residuals {
		if math.Abs(r) >= alpha {
			continue
		}
		t := r / alpha
		out[i] = apriori[i] * (1 - t*t) * (1 - t*t)
	}
	return out
}

// schedule linearly interpolates from start to end across total outer
// iterations, evaluated at iter. Used for both the damping and the
// bi-weight down-weighting schedules.
func schedule(start, end float64, iter, total int) float64 {
	if total <= 1 {
		return end
	}
	frac := float64(iter) / float64(total-1)
	if frac > 1 {
		frac = 1
	}
	return start + (end-start)*frac
}

// DampingFactor evaluates the damping schedule at outerIter.
func DampingFactor(opts SolverOptions, outerIter int) float64 {
	return schedule(opts.DampingFactorStart, opts.DampingFactorEnd, outerIter, opts.AlgoIterations)
}

// DownWeightingAlpha evaluates the bi-weight alpha schedule at outerIter.
func DownWeightingAlpha(opts SolverOptions, outerIter int) float64 {
	return schedule(opts.DownWeightingByResidualStart, opts.DownWeightingByResidualEnd, outerIter, opts.AlgoIterations)
}
