package ttt

import "fmt"

// GridHeader carries the geometry shared by velocity, travel-time, and
// angle grids for one (station, phase) triple.
type GridHeader struct {
	NumX, NumY, NumZ          int
	OrigX, OrigY, OrigZ       float64
	DX, DY, DZ                float64
	Transform                 Transform
	SwapBytes                 bool
	UseDouble                 bool
}

// Is2D reports whether this grid replicates along x (NumX <= 2): a
// radially-symmetric 2-D (distance, depth) model NonLinLoc stores with a
// degenerate x axis.
func (h GridHeader) Is2D() bool { return h.NumX <= 2 }

func (h GridHeader) inBounds(x, y, z float64) bool {
	maxX := h.OrigX + h.DX*float64(h.NumX-1)
	maxY := h.OrigY + h.DY*float64(h.NumY-1)
	maxZ := h.OrigZ + h.DZ*float64(h.NumZ-1)
	if !h.Is2D() && (x < h.OrigX || x > maxX) {
		return false
	}
	if y < h.OrigY || y > maxY {
		return false
	}
	if z < h.OrigZ || z > maxZ {
		return false
	}
	return true
}

// Grid is a single gridded value field held in memory (decoded, not
// memory-mapped): a GridHeader plus
// raw cell values and an isAngle tag. One parameterised type replaces
// separate TimeGrid/AngleGrid/VelGrid implementations: Value interpolates
// cells as plain scalars (time or velocity), Angle interpolates them as
// packed (quality, dip, azimuth) samples via decodeAngle and the
// dip/azimuth-aware blend in angle_interp.go. isAngle selects which
// method is valid for a given Grid and is fixed once at construction; no
// dynamic dispatch sits in the interpolation loop.
type Grid struct {
	Header  GridHeader
	Values  []float64 // row-major, length NumX*NumY*NumZ (or NumY*NumZ if 2D)
	isAngle bool
}

// NewValueGrid builds a Grid of plain scalar values (time or velocity).
func NewValueGrid(h GridHeader, values []float64) *Grid {
	return &Grid{Header: h, Values: values}
}

// NewAngleGrid builds a Grid whose cells pack (quality, dip, azimuth) as
// described in angle.go.
func NewAngleGrid(h GridHeader, values []float64) *Grid {
	return &Grid{Header: h, Values: values, isAngle: true}
}

func (g *Grid) index(ix, iy, iz int) int {
	if g.Header.Is2D() {
		return iy*g.Header.NumZ + iz
	}
	return (ix*g.Header.NumY+iy)*g.Header.NumZ + iz
}

func (g *Grid) cell(ix, iy, iz int) float64 {
	return g.Values[g.index(ix, iy, iz)]
}

// cellIndices clamps (ix,iy,iz) into bounds and returns the bracketing
// low indices and fractional offsets along each axis, for 2D or 3D grids.
func (h GridHeader) cellIndices(x, y, z float64) (ix0, iy0, iz0 int, fx, fy, fz float64) {
	axis := func(v, orig, d float64, n int) (int, float64) {
		if n <= 1 || d == 0 {
			return 0, 0
		}
		pos := (v - orig) / d
		i0 := int(pos)
		if i0 < 0 {
			i0 = 0
		}
		if i0 > n-2 {
			i0 = n - 2
		}
		return i0, pos - float64(i0)
	}
	if h.Is2D() {
		ix0, fx = 0, 0
	} else {
		ix0, fx = axis(x, h.OrigX, h.DX, h.NumX)
	}
	iy0, fy = axis(y, h.OrigY, h.DY, h.NumY)
	iz0, fz = axis(z, h.OrigZ, h.DZ, h.NumZ)
	return
}

// Value interpolates a plain scalar grid (time or velocity) at (x,y,z):
// trilinear for 3-D grids, bilinear in (y,z) for 2-D grids.
func (g *Grid) Value(x, y, z float64) (float64, error) {
	if g.isAngle {
		return 0, fmt.Errorf("ttt: Value called on an angle grid; use Angle instead")
	}
	if !g.Header.inBounds(x, y, z) {
		return 0, ErrOutOfRange
	}
	ix0, iy0, iz0, fx, fy, fz := g.Header.cellIndices(x, y, z)
	if g.Header.Is2D() {
		v00 := g.cell(0, iy0, iz0)
		v01 := g.cell(0, iy0, iz0+1)
		v10 := g.cell(0, iy0+1, iz0)
		v11 := g.cell(0, iy0+1, iz0+1)
		return bilinear(v00, v01, v10, v11, fy, fz), nil
	}
	ix1, iy1, iz1 := ix0+1, iy0+1, iz0+1
	c000 := g.cell(ix0, iy0, iz0)
	c001 := g.cell(ix0, iy0, iz1)
	c010 := g.cell(ix0, iy1, iz0)
	c011 := g.cell(ix0, iy1, iz1)
	c100 := g.cell(ix1, iy0, iz0)
	c101 := g.cell(ix1, iy0, iz1)
	c110 := g.cell(ix1, iy1, iz0)
	c111 := g.cell(ix1, iy1, iz1)
	return trilinear(c000, c001, c010, c011, c100, c101, c110, c111, fx, fy, fz), nil
}

func bilinear(v00, v01, v10, v11, fy, fz float64) float64 {
	a := v00*(1-fz) + v01*fz
	b := v10*(1-fz) + v11*fz
	return a*(1-fy) + b*fy
}

func trilinear(c000, c001, c010, c011, c100, c101, c110, c111, fx, fy, fz float64) float64 {
	e00 := c000*(1-fx) + c100*fx
	e01 := c001*(1-fx) + c101*fx
	e10 := c010*(1-fx) + c110*fx
	e11 := c011*(1-fx) + c111*fx
	return bilinear(e00, e01, e10, e11, fy, fz)
}
