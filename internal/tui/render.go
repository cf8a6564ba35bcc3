package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoproj/internal/mesh"
)

func (m Model) renderAsciiMap(w, h int) string {
	vp := m.viewport(w, h)
	// data and graticule go to separate buffers so the grid can be dimmed
	br := newBrailleBuf(w, h)
	grid := newBrailleBuf(w, h)

	if m.showGrid && m.projGrid != nil {
		for _, c := range m.projGrid.Lines {
			grid.drawPath(m.microPath(m.projGrid, c, vp), false)
		}
	}

	// Draw polygons (fill then edges)
	if m.showPolys && m.proj.polygons != nil {
		for _, c := range m.proj.polygons.Polys {
			ring := m.microPath(m.proj.polygons, c, vp)
			if len(ring) < 3 {
				continue
			}
			br.fillRing(ring, h*4)
			br.drawPath(ring, true)
		}
	}

	if m.showLines && m.proj.lines != nil {
		for _, c := range m.proj.lines.Lines {
			br.drawPath(m.microPath(m.proj.lines, c, vp), false)
		}
	}

	if m.showPoints && m.proj.points != nil {
		for _, c := range m.proj.points.Verts {
			for _, id := range c {
				if mx, my, ok := m.screenXYMicro(m.proj.points.Points[id], vp); ok {
					br.setPixel(mx, my)
				}
			}
		}
	}

	lines := composite(br, grid)

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := lines[cy]
			if cx >= 0 && cx < len(r) {
				r[cx] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
			}
		}
	}
	out := make([]string, len(lines))
	for i, r := range lines {
		out[i] = strings.Join(r, "")
	}
	return strings.Join(out, "\n")
}

// composite overlays data on the dimmed graticule, one string per cell.
func composite(data, grid *brailleBuf) [][]string {
	out := make([][]string, data.h)
	for y := range out {
		row := make([]string, data.w)
		for x := range row {
			switch {
			case data.m[y][x] != 0:
				row[x] = string(brailleRune(data.m[y][x] | grid.m[y][x]))
			case grid.m[y][x] != 0:
				row[x] = gridStyle.Render(string(brailleRune(grid.m[y][x])))
			default:
				row[x] = " "
			}
		}
		out[y] = row
	}
	return out
}

// microPath maps the points of cell c onto the microgrid, skipping points
// that are not visible.
func (m Model) microPath(pm *mesh.Mesh, c mesh.Cell, vp viewport) [][2]int {
	path := make([][2]int, 0, len(c))
	for _, id := range c {
		if mx, my, ok := m.screenXYMicro(pm.Points[id], vp); ok {
			path = append(path, [2]int{mx, my})
		}
	}
	return path
}

// fillRing fills a closed ring with the even-odd rule per micro scanline.
func (b *brailleBuf) fillRing(ring [][2]int, hMic int) {
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := range ring {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], b.w*2-1); xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// inspectNearest finds the input point drawn closest to the viewport
// centre and returns its lon/lat. Projected ids below the input point
// count are the input points themselves.
func (m Model) inspectNearest() (lon, lat float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	vp := m.viewport(w, h)
	cx, cy := w, h*2
	bestD := -1
	for _, pair := range m.pairs() {
		geo, out := pair[0], pair[1]
		if geo == nil || out == nil {
			continue
		}
		for id, p := range geo.Points {
			sx, sy, ok := m.screenXYMicro(out.Points[id], vp)
			if !ok {
				continue
			}
			d := (sx-cx)*(sx-cx) + (sy-cy)*(sy-cy)
			if bestD < 0 || d < bestD {
				bestD = d
				lon, lat = p.X, p.Y
			}
		}
	}
	return lon, lat, bestD >= 0
}

// nearestMicro returns the microgrid position of the drawn vertex closest
// to (hx, hy).
func (m Model) nearestMicro(hx, hy, w, h int) (int, int) {
	vp := m.viewport(w, h)
	bx, by := hx, hy
	best := -1
	for _, pair := range m.pairs() {
		out := pair[1]
		if out == nil {
			continue
		}
		for _, c := range out.Cells() {
			for _, id := range c {
				mx, my, ok := m.screenXYMicro(out.Points[id], vp)
				if !ok {
					continue
				}
				d := (mx-hx)*(mx-hx) + (my-hy)*(my-hy)
				if best < 0 || d < best {
					best = d
					bx, by = mx, my
				}
			}
		}
	}
	return bx, by
}
