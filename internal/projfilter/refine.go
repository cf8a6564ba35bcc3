package projfilter

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"geoproj/internal/mesh"
	"geoproj/internal/proj"
	"geoproj/internal/sphere"
)

// maxRefineDepth bounds the recursive subdivision of a single edge.
const maxRefineDepth = 3

// node is a position known both on the globe and in the normalized plane.
type node struct {
	ll sphere.LonLat
	h  float64
	xy r2.Point
}

// planar carries the per-call state shared by the cylindrical and
// azimuthal paths.
type planar struct {
	*builder
	cfg    Config
	proj   proj.Projection
	ext    proj.Extent
	geo    []sphere.LonLat
	valid  []bool
	mirror bool
	st     *stats
}

// newPlanar projects every input point once. Points the projection cannot
// map are stored as NaN and flagged invalid.
func (f *Filter) newPlanar(in *mesh.Mesh, st *stats) *planar {
	w := &planar{
		cfg:    f.cfg,
		proj:   f.proj,
		ext:    f.proj.Extent(),
		geo:    make([]sphere.LonLat, len(in.Points)),
		valid:  make([]bool, len(in.Points)),
		mirror: f.cfg.Projection.IsCylindrical(),
		st:     st,
	}
	pts := make([]r3.Vector, len(in.Points))
	for i, p := range in.Points {
		ll := sphere.LonLat{Lon: sphere.WrapLon(p.X), Lat: p.Y}
		w.geo[i] = ll
		xy, ok := w.project(ll)
		if !ok {
			st.unmappable++
			pts[i] = r3.Vector{X: math.NaN(), Y: math.NaN(), Z: p.Z}
			continue
		}
		w.valid[i] = true
		pts[i] = r3.Vector{X: xy.X, Y: xy.Y, Z: p.Z}
	}
	w.builder = newBuilder(in, pts)
	return w
}

func (w *planar) project(ll sphere.LonLat) (r2.Point, bool) {
	p, ok := w.proj.Forward(ll.Lon, ll.Lat)
	if !ok {
		return r2.Point{}, false
	}
	return w.ext.Normalize(p), true
}

// node returns input point id as a node. Only valid for projected points.
func (w *planar) node(id int) node {
	p := w.out.Points[id]
	return node{ll: w.geo[id], h: w.in.Points[id].Z, xy: r2.Point{X: p.X, Y: p.Y}}
}

// emit appends n as a new output point carrying the attributes of src.
func (w *planar) emit(n node, src int) int {
	w.st.inserted++
	return w.point(r3.Vector{X: n.xy.X, Y: n.xy.Y, Z: n.h}, src)
}

// refine appends to ids the great-circle points needed between a and b so
// that no two consecutive points are further apart than the interpolation
// distance in the plane. Neither a nor b is appended. Every inserted point
// takes its attributes from input point src. depth is 0 for a top-level
// edge.
func (w *planar) refine(ids []int, a, b node, src, depth int) []int {
	step := w.cfg.InterpolationDistance
	if step <= 0 || depth > maxRefineDepth {
		return ids
	}
	d := a.xy.Sub(b.xy).Norm()
	if d <= step {
		return ids
	}
	n := int(d/step) + 1
	mids := sphere.IntermediatePoints(a.ll, b.ll, n)
	if len(mids) != n {
		return ids
	}
	prev, moved := a, false
	for i, ll := range mids {
		xy, ok := w.project(ll)
		if !ok {
			continue
		}
		if w.mirror {
			// Keep the point on the side of the plane both ends are on.
			if (a.xy.X < 0.5 && b.xy.X < 0.5 && xy.X > 0.5) ||
				(a.xy.X > 0.5 && b.xy.X > 0.5 && xy.X < 0.5) {
				xy.X = 1 - xy.X
			}
		}
		t := float64(i+1) / float64(n+1)
		mid := node{ll: ll, h: a.h + t*(b.h-a.h), xy: xy}
		ids = w.refine(ids, prev, mid, src, depth+1)
		ids = append(ids, w.emit(mid, src))
		prev, moved = mid, true
	}
	if moved {
		ids = w.refine(ids, prev, b, src, depth+1)
	}
	return ids
}
