package proj

import (
	"math"

	"github.com/golang/geo/r2"
)

// azimuthal covers the oblique Lambert equal-area and equidistant
// projections. Both are undefined at the antipode of the centre.
type azimuthal struct {
	kind             Kind
	lon0             float64
	sinPhi0, cosPhi0 float64
}

func (a *azimuthal) Kind() Kind     { return a.kind }
func (a *azimuthal) Extent() Extent { return ExtentFor(a.kind) }

func (a *azimuthal) Forward(lon, lat float64) (r2.Point, bool) {
	if math.IsNaN(lon) || !validLat(lat) {
		return r2.Point{}, false
	}
	sinPhi, cosPhi := math.Sincos(lat * rad)
	sinLam, cosLam := math.Sincos(relLon(lon, a.lon0))
	cosC := a.sinPhi0*sinPhi + a.cosPhi0*cosPhi*cosLam

	var k float64
	switch a.kind {
	case LambertAzimuthal:
		if 1+cosC < 1e-12 {
			return r2.Point{}, false
		}
		k = math.Sqrt(2 / (1 + cosC))
	default:
		c := math.Acos(clamp(cosC, -1, 1))
		switch {
		case math.Pi-c < 1e-9:
			return r2.Point{}, false
		case c < 1e-12:
			k = 1
		default:
			k = c / math.Sin(c)
		}
	}
	return r2.Point{
		X: k * cosPhi * sinLam,
		Y: k * (a.cosPhi0*sinPhi - a.sinPhi0*cosPhi*cosLam),
	}, true
}

func (a *azimuthal) Inverse(p r2.Point) (lon, lat float64, ok bool) {
	rho := math.Hypot(p.X, p.Y)
	var c float64
	switch a.kind {
	case LambertAzimuthal:
		if rho > 2+1e-9 {
			return 0, 0, false
		}
		c = 2 * math.Asin(math.Min(1, rho/2))
	default:
		if rho > math.Pi+1e-9 {
			return 0, 0, false
		}
		c = math.Min(rho, math.Pi)
	}
	if rho < 1e-15 {
		return a.lon0, math.Asin(a.sinPhi0) / rad, true
	}
	sinC, cosC := math.Sincos(c)
	phi := math.Asin(clamp(cosC*a.sinPhi0+p.Y*sinC*a.cosPhi0/rho, -1, 1))
	lam := math.Atan2(p.X*sinC, rho*a.cosPhi0*cosC-p.Y*a.sinPhi0*sinC)
	return absLon(lam, a.lon0), phi / rad, true
}
