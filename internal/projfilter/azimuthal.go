package projfilter

import (
	"math"

	"geoproj/internal/mesh"
	"geoproj/internal/sphere"
)

// opposite is the point an azimuthal projection cannot map: the antipode
// of the centre.
func (c Config) opposite() sphere.LonLat {
	lat := 0.0
	if c.CenterLatitude != 0 {
		lat = -c.CenterLatitude
	}
	return sphere.LonLat{Lon: c.cutLongitude(), Lat: lat}
}

func (f *Filter) azimuthal(in *mesh.Mesh, st *stats) *mesh.Mesh {
	w := f.newPlanar(in, st)
	opp := f.cfg.opposite()

	if f.cfg.Eps > 0 {
		for i := range in.Points {
			if w.valid[i] && sphere.ArcDistance(w.geo[i], opp) < f.cfg.Eps {
				w.valid[i] = false
				w.out.Points[i].X, w.out.Points[i].Y = math.NaN(), math.NaN()
				st.unmappable++
			}
		}
	}

	for ci, cell := range in.Verts {
		if len(cell) == 1 && w.valid[cell[0]] {
			w.cell(mesh.Vertex, cell, ci)
		}
	}

	for ci, cell := range in.Lines {
		// Unmappable points break the line in two.
		var (
			ids  []int
			prev node
			src  int
		)
		for _, k := range cell {
			if !w.valid[k] {
				if len(ids) > 1 {
					w.cell(mesh.Line, ids, ci)
				}
				ids = ids[:0]
				continue
			}
			p := w.node(k)
			if len(ids) > 0 {
				ids = w.refine(ids, prev, p, src, 0)
			}
			ids = append(ids, k)
			prev, src = p, k
		}
		if len(ids) > 1 {
			w.cell(mesh.Line, ids, ci)
		}
	}

	for ci, cell := range in.Polys {
		if len(cell) == 0 {
			continue
		}
		closest := f.cfg.AzimuthalIgnorePolyDistance
		var r ring
		for _, k := range cell {
			closest = math.Min(closest, sphere.ArcDistance(w.geo[k], opp))
			if !w.valid[k] {
				continue
			}
			p := w.node(k)
			if !r.empty() {
				r.ids = w.refine(r.ids, r.last, p, r.lastSrc, 0)
			}
			r.add(k, p, k)
		}
		if closest < f.cfg.AzimuthalIgnorePolyDistance {
			// Too close to the opposite point to draw without wrapping
			// around the map border.
			st.droppedPoly++
			continue
		}
		w.closeAndEmit(&r, ci)
	}
	return w.out
}
