package projfilter

import (
	"math"

	"github.com/golang/geo/r2"

	"geoproj/internal/mesh"
	"geoproj/internal/sphere"
)

// cylinder cuts cells along the meridian opposite the centre. Output x
// below 0.5 is the half of the map west of the centre ("left"), above 0.5
// the half east of it.
type cylinder struct {
	*planar
	center float64
	cut    float64
}

func (f *Filter) cylindrical(in *mesh.Mesh, st *stats) *mesh.Mesh {
	c := &cylinder{
		planar: f.newPlanar(in, st),
		center: f.cfg.CenterLongitude,
		cut:    f.cfg.cutLongitude(),
	}

	// Points on the cut may land on either edge of the map; put each on
	// the edge of its own half.
	for i := range in.Points {
		if !c.valid[i] {
			continue
		}
		p := &c.out.Points[i]
		xy := c.toSide(r2.Point{X: p.X, Y: p.Y}, c.left(c.geo[i].Lon, false))
		p.X = xy.X
	}

	for ci, cell := range in.Verts {
		c.cell(mesh.Vertex, cell, ci)
	}
	for ci, cell := range in.Lines {
		c.line(cell, ci)
	}
	for ci, cell := range in.Polys {
		c.polygon(cell, ci)
	}
	return c.out
}

// left reports whether lon lies in the western half, between the cut and
// the centre. inclusive counts the centre meridian itself as west.
func (c *cylinder) left(lon float64, inclusive bool) bool {
	west := lon < c.center || (inclusive && lon == c.center)
	if c.center > c.cut {
		return lon >= c.cut && west
	}
	return lon >= c.cut || west
}

// crosses reports whether the shorter way from a to b passes the cut
// rather than the centre.
func (c *cylinder) crosses(a, b float64) bool {
	d1 := math.Abs(a - c.cut)
	if d1 >= 180 {
		d1 = 360 - d1
	}
	d2 := math.Abs(b - c.cut)
	if d2 >= 180 {
		d2 = 360 - d2
	}
	return d1+d2 <= 180
}

func (c *cylinder) toSide(xy r2.Point, left bool) r2.Point {
	if (left && xy.X > 0.5) || (!left && xy.X < 0.5) {
		xy.X = 1 - xy.X
	}
	return xy
}

// onCut returns the point at lat on the cut meridian, once for each side.
func (c *cylinder) onCut(lat, h float64, leftA, leftB bool) (node, node) {
	ll := sphere.LonLat{Lon: c.cut, Lat: lat}
	xy, _ := c.project(ll)
	return node{ll: ll, h: h, xy: c.toSide(xy, leftA)},
		node{ll: ll, h: h, xy: c.toSide(xy, leftB)}
}

// boundary returns the crossing of a-b with the cut, on a's side and on
// b's side. Its height is interpolated by arc length.
func (c *cylinder) boundary(a, b node, leftA, leftB bool) (node, node) {
	lat := sphere.CuttingPoint(a.ll, b.ll, c.cut)
	t := 0.5
	if total := sphere.ArcDistance(a.ll, b.ll); total > 0 {
		t = math.Min(1, sphere.ArcDistance(a.ll, sphere.LonLat{Lon: c.cut, Lat: lat})/total)
	}
	c.st.splits++
	return c.onCut(lat, a.h+t*(b.h-a.h), leftA, leftB)
}

// split is boundary for an edge whose end may lie on the cut itself. Such
// an end is its own crossing: aCut or bCut is set and the caller reuses the
// end point instead of emitting a second point at the same place.
func (c *cylinder) split(a, b node, leftA, leftB bool) (e1, e2 node, aCut, bCut bool) {
	switch {
	case a.ll.Lon == c.cut:
		c.st.splits++
		e2 = a
		e2.xy = c.toSide(a.xy, leftB)
		return a, e2, true, false
	case b.ll.Lon == c.cut:
		c.st.splits++
		e1 = b
		e1.xy = c.toSide(b.xy, leftA)
		return e1, b, false, true
	}
	e1, e2 = c.boundary(a, b, leftA, leftB)
	return e1, e2, false, false
}

// cutSource picks the input point whose attributes a crossing point takes:
// other when the crossing is that input point itself.
func cutSource(src, other int, onCut bool) int {
	if onCut {
		return other
	}
	return src
}

func (c *cylinder) line(cell mesh.Cell, ci int) {
	if len(cell) == 0 {
		return
	}
	ids := []int{cell[0]}
	p1 := c.node(cell[0])
	parts := 0
	for j := 1; j < len(cell); j++ {
		k, src := cell[j], cell[j-1]
		p2 := c.node(k)

		if p1.ll.Lon == c.cut && p2.ll.Lon == c.cut {
			// The edge runs along the cut: keep it and draw it again on
			// the opposite edge of the map.
			ids = c.refine(ids, p1, p2, src, 0)
			ids = append(ids, k)

			m1, m2 := p1, p2
			m1.xy.X, m2.xy.X = 1-p1.xy.X, 1-p2.xy.X
			mirrored := []int{c.emit(m1, src)}
			mirrored = c.refine(mirrored, m1, m2, src, 0)
			mirrored = append(mirrored, c.emit(m2, k))
			c.cell(mesh.Line, mirrored, ci)

			p1 = p2
			continue
		}

		l1, l2 := c.left(p1.ll.Lon, true), c.left(p2.ll.Lon, true)
		if l1 != l2 && c.crosses(p1.ll.Lon, p2.ll.Lon) {
			e1, e2, aCut, bCut := c.split(p1, p2, l1, l2)
			if !aCut {
				ids = c.refine(ids, p1, e1, src, 0)
				ids = append(ids, c.emit(e1, cutSource(src, k, bCut)))
			}
			if len(ids) > 1 {
				c.cell(mesh.Line, ids, ci)
				parts++
			}

			ids = ids[:0]
			if !bCut {
				ids = append(ids, c.emit(e2, cutSource(k, src, aCut)))
				ids = c.refine(ids, e2, p2, k, 0)
			}
		} else {
			ids = c.refine(ids, p1, p2, src, 0)
		}
		ids = append(ids, k)
		p1 = p2
	}
	switch {
	case len(ids) > 1:
		c.cell(mesh.Line, ids, ci)
	case parts == 0:
		c.st.degenerate++
	}
}

// polygon splits cell into at most two rings, one per half of the map.
// rings[0] collects the western half.
func (c *cylinder) polygon(cell mesh.Cell, ci int) {
	n := len(cell)
	if n == 0 {
		return
	}
	var rings [2]ring
	p1 := c.node(cell[0])
	l1 := c.left(p1.ll.Lon, true)
	cur := 1
	if l1 {
		cur = 0
	}
	rings[cur].add(cell[0], p1, cell[0])

	for j := 1; j <= n; j++ {
		k, src := cell[j%n], cell[j-1]
		p2 := c.node(k)
		l2 := c.left(p2.ll.Lon, true)
		r := &rings[cur]

		if l1 != l2 && c.crosses(p1.ll.Lon, p2.ll.Lon) {
			e1, e2, aCut, bCut := c.split(p1, p2, l1, l2)
			if !aCut {
				r.ids = c.refine(r.ids, p1, e1, src, 0)
				e1src := cutSource(src, k, bCut)
				r.add(c.emit(e1, e1src), e1, e1src)
			}

			if (cur == 0) == l2 {
				// Entering the half this ring already covers means the
				// ring circles the globe; close it over the nearer pole.
				lat := 90.0
				if e1.ll.Lat < 0 {
					lat = -90
				}
				pole1, pole2 := c.onCut(lat, e1.h, l1, l2)
				r.ids = c.refine(r.ids, e1, pole1, src, 0)
				r.add(c.emit(pole1, src), pole1, src)
				r.add(c.emit(pole2, k), pole2, k)
				r.ids = c.refine(r.ids, pole2, e2, k, 0)
				c.st.poleRoutes++
			} else {
				cur = 1 - cur
				r = &rings[cur]
				if !r.empty() {
					// Rejoin the ring where it last left the cut.
					r.ids = c.refine(r.ids, r.last, e2, r.lastSrc, 0)
				}
			}
			if !bCut {
				e2src := cutSource(k, src, aCut)
				if r.empty() || r.last.xy != e2.xy {
					r.add(c.emit(e2, e2src), e2, e2src)
				}
				r.ids = c.refine(r.ids, e2, p2, k, 0)
			}
		} else {
			r.ids = c.refine(r.ids, p1, p2, src, 0)
		}
		r.add(k, p2, k)
		p1, l1 = p2, l2
	}

	for i := range rings {
		c.closeAndEmit(&rings[i], ci)
	}
}
