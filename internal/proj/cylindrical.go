package proj

import (
	"math"

	"github.com/golang/geo/r2"
)

type cylindrical struct {
	kind Kind
	lon0 float64

	fwd func(lam, phi float64) r2.Point
	inv func(p r2.Point) (lam, phi float64, ok bool)
}

func newCylindrical(k Kind, lon0 float64) *cylindrical {
	c := &cylindrical{kind: k, lon0: lon0}
	switch k {
	case CylindricalEqualArea:
		c.fwd, c.inv = ceaForward, ceaInverse
	case Equirectangular:
		c.fwd, c.inv = eqcForward, eqcInverse
	case Mollweide:
		c.fwd, c.inv = mollForward, mollInverse
	case Robinson:
		c.fwd, c.inv = robinForward, robinInverse
	}
	return c
}

func (c *cylindrical) Kind() Kind     { return c.kind }
func (c *cylindrical) Extent() Extent { return ExtentFor(c.kind) }

func (c *cylindrical) Forward(lon, lat float64) (r2.Point, bool) {
	if math.IsNaN(lon) || !validLat(lat) {
		return r2.Point{}, false
	}
	return c.fwd(relLon(lon, c.lon0), lat*rad), true
}

func (c *cylindrical) Inverse(p r2.Point) (lon, lat float64, ok bool) {
	lam, phi, ok := c.inv(p)
	if !ok {
		return 0, 0, false
	}
	return absLon(lam, c.lon0), phi / rad, true
}

func ceaForward(lam, phi float64) r2.Point {
	return r2.Point{X: lam, Y: math.Sin(phi)}
}

func ceaInverse(p r2.Point) (float64, float64, bool) {
	return clamp(p.X, -math.Pi, math.Pi), math.Asin(clamp(p.Y, -1, 1)), true
}

func eqcForward(lam, phi float64) r2.Point {
	return r2.Point{X: lam, Y: phi}
}

func eqcInverse(p r2.Point) (float64, float64, bool) {
	return clamp(p.X, -math.Pi, math.Pi), clamp(p.Y, -math.Pi/2, math.Pi/2), true
}

const mollMaxIter = 50

func mollForward(lam, phi float64) r2.Point {
	// Newton on u + sin(u) = pi sin(phi), u = 2t. Near the poles the root
	// is double and the iteration may stall; the pole is close enough there.
	t := math.Copysign(math.Pi/2, phi)
	if math.Abs(math.Abs(phi)-math.Pi/2) > 1e-12 {
		k := math.Pi * math.Sin(phi)
		u := phi
		for i := 0; i < mollMaxIter; i++ {
			d := (u + math.Sin(u) - k) / (1 + math.Cos(u))
			u -= d
			if math.Abs(d) < 1e-10 {
				t = u / 2
				break
			}
		}
	}
	return r2.Point{
		X: 2 * math.Sqrt2 / math.Pi * lam * math.Cos(t),
		Y: math.Sqrt2 * math.Sin(t),
	}
}

func mollInverse(p r2.Point) (float64, float64, bool) {
	if math.Abs(p.Y) > math.Sqrt2+1e-9 {
		return 0, 0, false
	}
	t := math.Asin(clamp(p.Y/math.Sqrt2, -1, 1))
	phi := math.Asin(clamp((2*t+math.Sin(2*t))/math.Pi, -1, 1))
	ct := math.Cos(t)
	if ct < 1e-12 {
		return 0, phi, true
	}
	lam := math.Pi * p.X / (2 * math.Sqrt2 * ct)
	if math.Abs(lam) > math.Pi+1e-9 {
		return 0, 0, false
	}
	return clamp(lam, -math.Pi, math.Pi), phi, true
}

// Robinson's table, every 5 degrees of latitude from the equator.
var (
	robinX = []float64{
		1.0000, 0.9986, 0.9954, 0.9900, 0.9822, 0.9730, 0.9600, 0.9427, 0.9216, 0.8962,
		0.8679, 0.8350, 0.7986, 0.7597, 0.7186, 0.6732, 0.6213, 0.5722, 0.5322,
	}
	robinY = []float64{
		0.0000, 0.0620, 0.1240, 0.1860, 0.2480, 0.3100, 0.3720, 0.4340, 0.4958, 0.5571,
		0.6176, 0.6769, 0.7346, 0.7903, 0.8435, 0.8936, 0.9394, 0.9761, 1.0000,
	}
)

const (
	robinFXC = 0.8487
	robinFYC = 1.3523
)

// robinInterp evaluates a Catmull-Rom spline through tab at d (table steps
// from the equator). odd selects the mirror rule below the equator.
func robinInterp(tab []float64, d float64, odd bool) float64 {
	last := len(tab) - 1
	i := int(d)
	if i >= last {
		i = last - 1
	}
	t := d - float64(i)
	at := func(j int) float64 {
		switch {
		case j < 0:
			if odd {
				return -tab[-j]
			}
			return tab[-j]
		case j > last:
			return 2*tab[last] - tab[2*last-j]
		}
		return tab[j]
	}
	p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
	return 0.5 * (2*p1 + (p2-p0)*t + (2*p0-5*p1+4*p2-p3)*t*t + (3*p1-p0-3*p2+p3)*t*t*t)
}

func robinForward(lam, phi float64) r2.Point {
	d := math.Abs(phi) / rad / 5
	return r2.Point{
		X: robinFXC * lam * robinInterp(robinX, d, false),
		Y: math.Copysign(robinFYC*robinInterp(robinY, d, true), phi),
	}
}

func robinInverse(p r2.Point) (float64, float64, bool) {
	target := math.Abs(p.Y) / robinFYC
	if target > 1+1e-9 {
		return 0, 0, false
	}
	lo, hi := 0.0, float64(len(robinY)-1)
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if robinInterp(robinY, mid, true) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	d := (lo + hi) / 2
	phi := math.Copysign(d*5*rad, p.Y)
	lam := p.X / (robinFXC * robinInterp(robinX, d, false))
	if math.Abs(lam) > math.Pi+1e-9 {
		return 0, 0, false
	}
	return clamp(lam, -math.Pi, math.Pi), phi, true
}
