package projfilter

import (
	"github.com/golang/geo/r3"

	"geoproj/internal/mesh"
	"geoproj/internal/sphere"
)

// cartesian places p on a sphere of radius p.Z, or ReferenceHeight when p
// has no positive height.
func (c Config) cartesian(p r3.Vector) r3.Vector {
	r := c.ReferenceHeight
	if p.Z > 0 {
		r = p.Z
	}
	return sphere.LonLat{Lon: p.X, Lat: p.Y}.Vector().Mul(r)
}

func (f *Filter) sphere3D(in *mesh.Mesh, st *stats) *mesh.Mesh {
	pts := make([]r3.Vector, len(in.Points))
	for i, p := range in.Points {
		pts[i] = f.cfg.cartesian(p)
	}
	b := newBuilder(in, pts)

	// Edges longer than step degrees of arc get evenly spaced points.
	step := 360 * f.cfg.InterpolationDistance
	refine := func(ids []int, from, to int) []int {
		if step <= 0 {
			return ids
		}
		d := sphere.ArcDistanceXYZ(pts[from], pts[to])
		if d <= step {
			return ids
		}
		for _, v := range sphere.IntermediatePointsXYZ(pts[from], pts[to], int(d/step)) {
			ids = append(ids, b.point(v, from))
			st.inserted++
		}
		return ids
	}

	for ci, cell := range in.Verts {
		b.cell(mesh.Vertex, cell, ci)
	}
	for ci, cell := range in.Lines {
		var ids []int
		for j, k := range cell {
			if j > 0 {
				ids = refine(ids, cell[j-1], k)
			}
			ids = append(ids, k)
		}
		b.cell(mesh.Line, ids, ci)
	}
	for ci, cell := range in.Polys {
		var ids []int
		for j, k := range cell {
			if j > 0 {
				ids = refine(ids, cell[j-1], k)
			}
			ids = append(ids, k)
		}
		if n := len(cell); n > 2 {
			ids = refine(ids, cell[n-1], cell[0])
		}
		b.cell(mesh.Polygon, ids, ci)
	}
	return b.out
}
