package ttt

import "math"

// Angle interpolates an angle grid at (x,y,z). Each corner is decoded
// independently (quality, dip, azimuth); dip is interpolated linearly,
// azimuth is interpolated after unwrapping the nearest representative
// across the 360-degree seam, and quality is clamped to the minimum
// across the participating corners. Samples whose clamped quality falls
// below QualityCutoff are rejected with ErrLowQuality.
func (g *Grid) Angle(x, y, z float64) (AngleSample, error) {
	if !g.isAngle {
		return AngleSample{}, ErrBadHeader
	}
	if !g.Header.inBounds(x, y, z) {
		return AngleSample{}, ErrOutOfRange
	}
	ix0, iy0, iz0, fx, fy, fz := g.Header.cellIndices(x, y, z)

	var corners []AngleSample
	var weights []float64
	add := func(ix, iy, iz int, w float64) {
		corners = append(corners, decodeAngle(g.cell(ix, iy, iz)))
		weights = append(weights, w)
	}
	if g.Header.Is2D() {
		add(0, iy0, iz0, (1-fy)*(1-fz))
		add(0, iy0, iz0+1, (1-fy)*fz)
		add(0, iy0+1, iz0, fy*(1-fz))
		add(0, iy0+1, iz0+1, fy*fz)
	} else {
		ix1, iy1, iz1 := ix0+1, iy0+1, iz0+1
		add(ix0, iy0, iz0, (1-fx)*(1-fy)*(1-fz))
		add(ix0, iy0, iz1, (1-fx)*(1-fy)*fz)
		add(ix0, iy1, iz0, (1-fx)*fy*(1-fz))
		add(ix0, iy1, iz1, (1-fx)*fy*fz)
		add(ix1, iy0, iz0, fx*(1-fy)*(1-fz))
		add(ix1, iy0, iz1, fx*(1-fy)*fz)
		add(ix1, iy1, iz0, fx*fy*(1-fz))
		add(ix1, iy1, iz1, fx*fy*fz)
	}

	minQuality := corners[0].Quality
	dip := 0.0
	ref := corners[0].AzimDeg
	azimSum := 0.0
	for i, c := range corners {
		if c.Quality < minQuality {
			minQuality = c.Quality
		}
		dip += c.DipDeg * weights[i]
		azimSum += unwrapNear(c.AzimDeg, ref) * weights[i]
	}
	azim := wrap360(azimSum)

	if minQuality < QualityCutoff {
		return AngleSample{}, ErrLowQuality
	}
	return AngleSample{Quality: minQuality, DipDeg: dip, AzimDeg: azim}, nil
}

// unwrapNear returns the representative of azim (mod 360) nearest to ref,
// so averaging across the 360-degree seam (e.g. 359 and 1) doesn't
// produce a spurious ~180-degree result.
func unwrapNear(azim, ref float64) float64 {
	d := math.Mod(azim-ref+540, 360) - 180
	return ref + d
}

func wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
