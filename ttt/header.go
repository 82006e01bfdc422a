package ttt

import (
	"fmt"
	"strconv"
	"strings"
)

// parseHeader parses a NonLinLoc-style ASCII grid header laid out as:
//
//	numx numy numz origx origy origz dx dy dz type useDouble label
//	[kind origLat origLon [rotationDeg]]
//
// The transform tokens are read only when kind, origLat and origLon are
// all present; otherwise the transform is NONE. Source-position tokens
// (srcex srcey srcez) are not read: a header carrying them after the
// label has them taken as the transform tokens. Tokens after
// rotationDeg are ignored.
func parseHeader(text string) (GridHeader, error) {
	fields := strings.Fields(text)
	if len(fields) < 12 {
		return GridHeader{}, fmt.Errorf("%w: want at least 12 tokens, got %d", ErrBadHeader, len(fields))
	}
	atoi := func(s string) (int, error) { return strconv.Atoi(s) }
	atof := func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

	var h GridHeader
	var err error
	if h.NumX, err = atoi(fields[0]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: numx: %v", ErrBadHeader, err)
	}
	if h.NumY, err = atoi(fields[1]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: numy: %v", ErrBadHeader, err)
	}
	if h.NumZ, err = atoi(fields[2]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: numz: %v", ErrBadHeader, err)
	}
	if h.OrigX, err = atof(fields[3]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: origx: %v", ErrBadHeader, err)
	}
	if h.OrigY, err = atof(fields[4]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: origy: %v", ErrBadHeader, err)
	}
	if h.OrigZ, err = atof(fields[5]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: origz: %v", ErrBadHeader, err)
	}
	if h.DX, err = atof(fields[6]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: dx: %v", ErrBadHeader, err)
	}
	if h.DY, err = atof(fields[7]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: dy: %v", ErrBadHeader, err)
	}
	if h.DZ, err = atof(fields[8]); err != nil {
		return GridHeader{}, fmt.Errorf("%w: dz: %v", ErrBadHeader, err)
	}
	// fields[9] = type label, fields[10] = useDouble flag, fields[11] = label
	h.UseDouble = fields[10] == "1"

	// Optional transform tokens following the 12 mandatory ones.
	h.Transform = NewTransform(TransformNone, 0, 0, 0)
	if len(fields) >= 15 {
		kind := parseTransformKind(fields[12])
		origLat, _ := atof(fields[13])
		origLon, _ := atof(fields[14])
		rotation := 0.0
		if len(fields) >= 16 {
			rotation, _ = atof(fields[15])
		}
		h.Transform = NewTransform(kind, origLat, origLon, rotation)
	}
	return h, nil
}

func parseTransformKind(tok string) TransformKind {
	switch strings.ToUpper(tok) {
	case "SDC":
		return TransformSDC
	case "SIMPLE":
		return TransformSimple
	default:
		return TransformNone
	}
}
