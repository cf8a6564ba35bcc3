package tui

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"geoproj/internal/sphere"
)

// viewport maps normalized projected coordinates onto the braille
// microgrid (2x4 pixels per cell) of a w x h cell map. The unit square is
// scaled to keep the projection's height over width ratio.
type viewport struct {
	w, h       int
	ratio      float64
	zoom       float64
	offX, offY int
}

func (m Model) viewport(w, h int) viewport {
	return viewport{w: w, h: h, ratio: m.cfg.XYRatio(), zoom: m.zoom, offX: m.offsetX, offY: m.offsetY}
}

// frame is the pixel rectangle covered by the unit square at zoom 1.
func (v viewport) frame() (x0, y0, pw, ph float64) {
	wMic, hMic := float64(v.w*2-1), float64(v.h*4-1)
	pw, ph = wMic, wMic*v.ratio
	if ph > hMic {
		ph, pw = hMic, hMic/v.ratio
	}
	return (wMic - pw) / 2, (hMic - ph) / 2, pw, ph
}

func (v viewport) micro(n r2.Point) (int, int, bool) {
	if v.w <= 1 || v.h <= 1 || math.IsNaN(n.X) || math.IsNaN(n.Y) {
		return 0, 0, false
	}
	x0, y0, pw, ph := v.frame()
	// zoom around the centre of the map
	zx := 0.5 + (n.X-0.5)*v.zoom
	zy := 0.5 + (n.Y-0.5)*v.zoom
	sx := int(math.Round(x0+zx*pw)) + v.offX*2
	sy := int(math.Round(y0+(1-zy)*ph)) + v.offY*4
	return sx, sy, true
}

// normalized inverts micro.
func (v viewport) normalized(mx, my int) r2.Point {
	x0, y0, pw, ph := v.frame()
	zx := (float64(mx-v.offX*2) - x0) / pw
	zy := 1 - (float64(my-v.offY*4)-y0)/ph
	return r2.Point{X: 0.5 + (zx-0.5)/v.zoom, Y: 0.5 + (zy-0.5)/v.zoom}
}

// globe is an orthographic view of the 3D output looking down on the
// projection centre. Heights are ignored; only directions are drawn.
type globe struct {
	c, e, n r3.Vector // centre, east and north unit vectors
}

func newGlobe(lat, lon float64) globe {
	c := sphere.LonLat{Lon: lon, Lat: lat}.Vector()
	s, co := math.Sincos(lon * math.Pi / 180)
	e := r3.Vector{X: -s, Y: co}
	return globe{c: c, e: e, n: c.Cross(e)}
}

// normalized maps p into the unit square; ok is false on the far side.
func (g globe) normalized(p r3.Vector) (r2.Point, bool) {
	if p.Norm() == 0 || math.IsNaN(p.X) {
		return r2.Point{}, false
	}
	u := p.Normalize()
	if u.Dot(g.c) < 0 {
		return r2.Point{}, false
	}
	return r2.Point{X: (u.Dot(g.e) + 1) / 2, Y: (u.Dot(g.n) + 1) / 2}, true
}

func (g globe) lonLat(n r2.Point) (lon, lat float64, ok bool) {
	x, y := 2*n.X-1, 2*n.Y-1
	d := 1 - x*x - y*y
	if d < 0 {
		return 0, 0, false
	}
	ll := sphere.FromVector(g.e.Mul(x).Add(g.n.Mul(y)).Add(g.c.Mul(math.Sqrt(d))))
	return ll.Lon, ll.Lat, true
}
