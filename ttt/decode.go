package ttt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// decodeBuffer turns a raw little-endian (or swapped) buffer of floats or
// doubles into the []float64 slice Grid operates on. The buffer is
// row-major, little-endian (or swapped) floats/doubles of count
// numx*numy*numz.
func decodeBuffer(buf []byte, n int, useDouble, swapBytes bool) ([]float64, error) {
	out := make([]float64, n)
	if useDouble {
		if len(buf) < n*8 {
			return nil, fmt.Errorf("%w: buffer too short for %d doubles", ErrBadHeader, n)
		}
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint64(buf[i*8:])
			v := math.Float64frombits(bits)
			if swapBytes {
				v = swapFloat64(v)
			}
			out[i] = v
		}
		return out, nil
	}
	if len(buf) < n*4 {
		return nil, fmt.Errorf("%w: buffer too short for %d floats", ErrBadHeader, n)
	}
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		v := math.Float32frombits(bits)
		if swapBytes {
			v = swapFloat32(v)
		}
		out[i] = float64(v)
	}
	return out, nil
}
