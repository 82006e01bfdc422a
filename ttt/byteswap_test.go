package ttt

import (
	"math"
	"testing"
)

func TestSwapFloat32Idempotent(t *testing.T) {
	values := []float32{0, 1, -1, 3.14159, math.MaxFloat32, -123456.789}
	for _, v := range values {
		swapped := swapFloat32(v)
		back := swapFloat32(swapped)
		if back != v {
			t.Errorf("swapFloat32(swapFloat32(%v)) = %v, want %v", v, back, v)
		}
		if v != 0 && swapped == v {
			t.Errorf("swapFloat32(%v) = %v, expected a different byte pattern", v, swapped)
		}
	}
}

func TestSwapFloat64Idempotent(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159265358979, math.MaxFloat64, -123456789.123456}
	for _, v := range values {
		swapped := swapFloat64(v)
		back := swapFloat64(swapped)
		if back != v {
			t.Errorf("swapFloat64(swapFloat64(%v)) = %v, want %v", v, back, v)
		}
		if v != 0 && swapped == v {
			t.Errorf("swapFloat64(%v) = %v, expected a different byte pattern", v, swapped)
		}
	}
}

func TestDecodeBufferRespectsByteOrder(t *testing.T) {
	h := GridHeader{NumX: 2, NumY: 1, NumZ: 1, DX: 1, DY: 1, DZ: 1}
	_ = h

	native := []float64{1.5, -2.25}
	buf := make([]byte, 16)
	for i, v := range native {
		bits := math.Float64bits(v)
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(bits >> (8 * b))
		}
	}
	got, err := decodeBuffer(buf, 2, true, false)
	if err != nil {
		t.Fatalf("decodeBuffer: %v", err)
	}
	for i := range native {
		if got[i] != native[i] {
			t.Errorf("decodeBuffer[%d] = %v, want %v", i, got[i], native[i])
		}
	}

	swappedBuf := make([]byte, 16)
	for i, v := range native {
		bits := math.Float64bits(swapFloat64(v))
		for b := 0; b < 8; b++ {
			swappedBuf[i*8+b] = byte(bits >> (8 * b))
		}
	}
	got2, err := decodeBuffer(swappedBuf, 2, true, true)
	if err != nil {
		t.Fatalf("decodeBuffer (swapped): %v", err)
	}
	for i := range native {
		if got2[i] != native[i] {
			t.Errorf("decodeBuffer swapped[%d] = %v, want %v", i, got2[i], native[i])
		}
	}
}
