package projfilter

import "geoproj/internal/mesh"

// ring accumulates the output ids of one polygon together with the
// positions of its first and last points, which may be synthetic boundary
// points with no input id of their own.
type ring struct {
	ids         []int
	first, last node
	lastSrc     int
}

func (r *ring) empty() bool { return len(r.ids) == 0 }

// add appends output point id at position n. src is the input point whose
// attributes any closing refinement will copy.
func (r *ring) add(id int, n node, src int) {
	if r.empty() {
		r.first = n
	}
	r.ids = append(r.ids, id)
	r.last = n
	r.lastSrc = src
}

// closeAndEmit refines the closing edge of r when its ends differ, drops a
// repeated closing id and emits the result as a polygon carrying the
// attributes of input cell. Rings left with fewer than three points are
// counted as degenerate and discarded.
func (w *planar) closeAndEmit(r *ring, cell int) {
	switch len(r.ids) {
	case 0:
		return
	case 1:
		w.st.degenerate++
		return
	}
	if r.ids[0] != r.ids[len(r.ids)-1] && r.first.ll != r.last.ll {
		r.ids = w.refine(r.ids, r.last, r.first, r.lastSrc, 0)
	}
	if r.ids[0] == r.ids[len(r.ids)-1] {
		r.ids = r.ids[:len(r.ids)-1]
	}
	if len(r.ids) < 3 {
		w.st.degenerate++
		return
	}
	w.cell(mesh.Polygon, r.ids, cell)
}
