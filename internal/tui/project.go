package tui

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"geoproj/internal/mesh"
	"geoproj/internal/proj"
	"geoproj/internal/projfilter"
	"geoproj/internal/sphere"
)

// centerStep is how far [ ] { } move the projection centre, in degrees.
const centerStep = 15.0

// reproject runs the filter over every loaded layer and the graticule.
func (m *Model) reproject() {
	f, err := projfilter.New(m.cfg, projfilter.WithLogger(m.log))
	if err != nil {
		m.proj, m.projGrid = layers{}, nil
		m.status = "projection: " + err.Error()
		return
	}
	var firstErr error
	apply := func(name string, in *mesh.Mesh) *mesh.Mesh {
		if in == nil {
			return nil
		}
		out, err := f.Apply(in)
		if err != nil {
			m.log.Warn("projection failed", zap.String("layer", name), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			return nil
		}
		return out
	}
	m.proj = layers{
		points:   apply("points", m.data.Points),
		lines:    apply("lines", m.data.Lines),
		polygons: apply("polygons", m.data.Polygons),
	}
	m.projGrid = apply("graticule", m.grid)
	if firstErr != nil {
		m.status = "projection: " + firstErr.Error()
	}
}

// cycleProjection switches to the next projection and resets the view.
func (m *Model) cycleProjection() {
	kinds := proj.Kinds()
	next := kinds[0]
	for i, k := range kinds {
		if k == m.cfg.Projection {
			next = kinds[(i+1)%len(kinds)]
			break
		}
	}
	m.cfg.Projection = next
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.status = "projection: " + next.String()
	m.reproject()
}

func (m *Model) moveCenter(dLon, dLat float64) {
	m.cfg.CenterLongitude = sphere.WrapLon(m.cfg.CenterLongitude + dLon)
	m.cfg.CenterLatitude = math.Max(-90, math.Min(90, m.cfg.CenterLatitude+dLat))
	m.status = fmt.Sprintf("center: lon=%.1f lat=%.1f", m.cfg.CenterLongitude, m.cfg.CenterLatitude)
	m.reproject()
}

// screen returns the normalized position of an output point.
func (m Model) screen(p r3.Vector) (r2.Point, bool) {
	if m.cfg.Projection == proj.Spherical3D {
		return newGlobe(m.cfg.CenterLatitude, m.cfg.CenterLongitude).normalized(p)
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return r2.Point{}, false
	}
	return r2.Point{X: p.X, Y: p.Y}, true
}

// screenXYMicro maps an output point onto the braille microgrid.
func (m Model) screenXYMicro(p r3.Vector, vp viewport) (int, int, bool) {
	n, ok := m.screen(p)
	if !ok {
		return 0, 0, false
	}
	return vp.micro(n)
}

// cellToLonLat converts a map cell back to lon/lat through the inverse of
// the current projection.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	n := m.viewport(w, h).normalized(cx*2+1, cy*4+2)
	if m.cfg.Projection == proj.Spherical3D {
		return newGlobe(m.cfg.CenterLatitude, m.cfg.CenterLongitude).lonLat(n)
	}
	lon, lat, err := proj.Inverse(m.cfg.Projection, m.cfg.CenterLatitude, m.cfg.CenterLongitude, n)
	if err != nil {
		return 0, 0, false
	}
	return lon, lat, true
}

// pairs lists the geographic and projected meshes of each visible layer.
func (m Model) pairs() [][2]*mesh.Mesh {
	var out [][2]*mesh.Mesh
	if m.showPolys {
		out = append(out, [2]*mesh.Mesh{m.data.Polygons, m.proj.polygons})
	}
	if m.showLines {
		out = append(out, [2]*mesh.Mesh{m.data.Lines, m.proj.lines})
	}
	if m.showPoints {
		out = append(out, [2]*mesh.Mesh{m.data.Points, m.proj.points})
	}
	return out
}

func (m Model) counts() string {
	n := func(x *mesh.Mesh) int {
		if x == nil {
			return 0
		}
		return x.NumCells()
	}
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d", n(m.data.Points), n(m.data.Lines), n(m.data.Polygons))
}
