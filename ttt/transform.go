package ttt

import "math"

// TransformKind is the closed set of coordinate-transform variants a
// gridded travel-time model header may declare.
type TransformKind int

const (
	// TransformNone performs no geographic conversion; grid (x,y) are used as-is.
	TransformNone TransformKind = iota
	// TransformSimple is a small-angle geographic projection about origLat/origLon.
	TransformSimple
	// TransformSDC is the Short Distance Conversion used by NonLinLoc.
	TransformSDC
)

// mapTransSDCDrlt is NonLinLoc's SDC reduced-latitude correction factor.
const mapTransSDCDrlt = 0.99330647

// earthRadiusKm mirrors partials.ERAD; kept local so ttt has no
// dependency on partials (grids are a leaf collaborator with their own
// coordinate math).
const earthRadiusKm = 6378.135

// earthFlattening is 1/298.26, matching nllttt.h.
const earthFlattening = 1.0 / 298.26

// Transform converts between geographic (lat, lon) and a grid's local
// (x, y) kilometres. It is a tagged variant over TransformKind rather
// than an interface: transforms are invoked in the interpolation hot
// loop and dynamic dispatch there is unwanted.
type Transform struct {
	Kind            TransformKind
	OrigLat, OrigLon float64 // degrees; transform origin
	RotationDeg     float64  // degrees, clockwise from north
	cosRot, sinRot  float64
	rlat            float64 // SDC: reduced-latitude trig helper
}

// NewTransform builds a Transform and precomputes its trig helpers.
func NewTransform(kind TransformKind, origLat, origLon, rotationDeg float64) Transform {
	t := Transform{Kind: kind, OrigLat: origLat, OrigLon: origLon, RotationDeg: rotationDeg}
	rad := rotationDeg * math.Pi / 180
	t.cosRot, t.sinRot = math.Cos(rad), math.Sin(rad)
	if kind == TransformSDC {
		t.rlat = math.Atan(mapTransSDCDrlt * math.Tan(origLat*math.Pi/180))
	}
	return t
}

// ToXY converts geographic coordinates to the grid's local (x,y) km,
// accounting for the transform's rotation.
func (t Transform) ToXY(lat, lon float64) (x, y float64) {
	switch t.Kind {
	case TransformNone:
		return lon, lat
	case TransformSDC:
		xlat := math.Atan(mapTransSDCDrlt * math.Tan(lat*math.Pi/180))
		dlat := xlat - t.rlat
		dlon := (lon - t.OrigLon) * math.Pi / 180 * math.Cos((xlat+t.rlat)/2)
		kmPerRad := earthRadiusKm * (1 - earthFlattening*math.Sin(t.rlat)*math.Sin(t.rlat))
		yy := dlat * kmPerRad
		xx := dlon * kmPerRad
		return t.rotate(xx, yy)
	default: // TransformSimple
		c111 := 10000.0 / 90.0
		cosLat := math.Cos(t.OrigLat * math.Pi / 180)
		xx := (lon - t.OrigLon) * c111 * cosLat
		yy := (lat - t.OrigLat) * c111
		return t.rotate(xx, yy)
	}
}

// FromXY is the inverse of ToXY.
func (t Transform) FromXY(x, y float64) (lat, lon float64) {
	switch t.Kind {
	case TransformNone:
		return y, x
	case TransformSDC:
		xx, yy := t.unrotate(x, y)
		kmPerRad := earthRadiusKm * (1 - earthFlattening*math.Sin(t.rlat)*math.Sin(t.rlat))
		xlat := yy/kmPerRad + t.rlat
		lat = math.Atan(math.Tan(xlat)/mapTransSDCDrlt) * 180 / math.Pi
		lon = t.OrigLon + (xx/kmPerRad)/math.Cos((xlat+t.rlat)/2)*180/math.Pi
		return lat, lon
	default:
		xx, yy := t.unrotate(x, y)
		c111 := 10000.0 / 90.0
		cosLat := math.Cos(t.OrigLat * math.Pi / 180)
		lon = t.OrigLon + xx/(c111*cosLat)
		lat = t.OrigLat + yy/c111
		return lat, lon
	}
}

func (t Transform) rotate(x, y float64) (float64, float64) {
	return x*t.cosRot + y*t.sinRot, -x*t.sinRot + y*t.cosRot
}

func (t Transform) unrotate(x, y float64) (float64, float64) {
	return x*t.cosRot - y*t.sinRot, x*t.sinRot + y*t.cosRot
}

// RotateAngle adjusts an azimuth (degrees, clockwise from north) for the
// transform's rotation; used so take-off azimuths read off an angle grid
// are reported in true-north terms regardless of the grid's orientation.
func (t Transform) RotateAngle(azimDeg float64) float64 {
	a := azimDeg - t.RotationDeg
	for a < 0 {
		a += 360
	}
	for a >= 360 {
		a -= 360
	}
	return a
}
