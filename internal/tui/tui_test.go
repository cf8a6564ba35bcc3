package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"

	"geoproj/internal/geom"
	"geoproj/internal/proj"
	"geoproj/internal/projfilter"
	"geoproj/internal/sphere"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func mustWKT(t *testing.T, s string) geom.Data {
	t.Helper()
	d, err := geom.ParseWKT(s)
	require.NoError(t, err)
	return d
}

func sized(t *testing.T, m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func TestNewProjectsGraticule(t *testing.T) {
	m := New(projfilter.DefaultConfig())
	require.NotNil(t, m.grid)
	require.NotNil(t, m.projGrid)
	require.Len(t, m.projGrid.Lines, len(m.grid.Lines))
	require.Nil(t, m.proj.points)
}

func TestCycleProjection(t *testing.T) {
	m := New(projfilter.DefaultConfig())
	m = press(t, m, "m")
	require.Equal(t, proj.CylindricalEqualArea, m.cfg.Projection)
	require.NotNil(t, m.projGrid)

	for range proj.Kinds()[1:] {
		m = press(t, m, "m")
	}
	require.Equal(t, proj.Equirectangular, m.cfg.Projection)
}

func TestMoveCenter(t *testing.T) {
	m := New(projfilter.DefaultConfig())
	m = press(t, m, "]")
	require.Equal(t, 15.0, m.cfg.CenterLongitude)
	m = press(t, m, "[", "[")
	require.Equal(t, -15.0, m.cfg.CenterLongitude)
	for i := 0; i < 8; i++ {
		m = press(t, m, "}")
	}
	require.Equal(t, 90.0, m.cfg.CenterLatitude)
	m = press(t, m, "{")
	require.Equal(t, 75.0, m.cfg.CenterLatitude)
	m = press(t, m, "g")
	require.False(t, m.showGrid)
}

func TestPasteWKT(t *testing.T) {
	m := New(projfilter.DefaultConfig())
	m = press(t, m, "p")
	require.True(t, m.pasteMode)
	m.ta.SetValue("POLYGON((170 10, -170 10, -170 -10, 170 -10, 170 10))")
	m = press(t, m, "enter")
	require.False(t, m.pasteMode)
	require.True(t, m.showPolys)
	require.NotNil(t, m.proj.polygons)
	// the box crosses the cut meridian and comes out in two pieces
	require.Len(t, m.proj.polygons.Polys, 2)
	require.Contains(t, m.status, "rendered WKT")

	m = press(t, m, "p")
	m.ta.SetValue("NOT WKT")
	m = press(t, m, "enter")
	require.True(t, m.pasteMode)
	require.Contains(t, m.status, "wkt error")
}

func TestLoadPathAndInspect(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pts.geojson")
	require.NoError(t, os.WriteFile(p, []byte(`{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {"name": "origin"}, "geometry": {"type": "Point", "coordinates": [0, 0]}},
	  {"type": "Feature", "properties": {"name": "east"}, "geometry": {"type": "Point", "coordinates": [90, 45]}}
	]}`), 0o644))

	m := New(projfilter.DefaultConfig(), WithPath(p))
	require.Equal(t, p, m.selPath)
	require.True(t, m.showPoints)
	require.NotNil(t, m.proj.points)
	require.Contains(t, m.status, "pts=2")

	m = press(t, m, "i")
	require.Contains(t, m.inspectPopup, "nearest: lon=0.000000 lat=0.000000")

	m = press(t, m, "a")
	require.True(t, m.showAttrs)
	require.Len(t, m.tbl.Rows(), 2)
	require.Equal(t, "origin", m.tbl.Rows()[0][1])

	m = New(projfilter.DefaultConfig(), WithPath(filepath.Join(t.TempDir(), "missing.csv")))
	require.Contains(t, m.status, "load error")
}

func TestRenderAndHover(t *testing.T) {
	m := sized(t, New(projfilter.DefaultConfig()))
	m.setData(mustWKT(t, "LINESTRING(-60 0, 60 0)"))
	out := m.View()
	require.NotEmpty(t, out)
	canvas := m.renderAsciiMap(80, 20)
	require.GreaterOrEqual(t, strings.IndexFunc(canvas, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }), 0)

	_, oy, w, h := m.layout()
	next, _ := m.Update(tea.MouseMsg{X: w / 2, Y: oy + h/2})
	m = next.(Model)
	require.True(t, m.hovering)
	require.True(t, m.hoverHasGeo)
	require.InDelta(t, 0, m.hoverLon, 3)
	require.InDelta(t, 0, m.hoverLat, 3)

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0})
	m = next.(Model)
	require.False(t, m.hovering)
}

func TestViewport(t *testing.T) {
	vp := viewport{w: 80, h: 24, ratio: 0.5, zoom: 1}
	x0, y0, ok := vp.micro(r2.Point{X: 0, Y: 1})
	require.True(t, ok)
	x1, y1, _ := vp.micro(r2.Point{X: 1, Y: 0})
	require.Equal(t, 0, x0)
	require.Equal(t, 159, x1)
	// height is half the width in pixels
	require.InDelta(t, 80, y1-y0, 1)

	n := vp.normalized(80, 48)
	require.InDelta(t, 0.5, n.X, 0.01)
	require.InDelta(t, 0.5, n.Y, 0.02)

	_, _, ok = vp.micro(r2.Point{X: 0.5, Y: math.NaN()})
	require.False(t, ok)
}

func TestGlobe(t *testing.T) {
	g := newGlobe(0, 0)
	n, ok := g.normalized(sphere.LonLat{Lon: 0, Lat: 0}.Vector().Mul(2))
	require.True(t, ok)
	require.InDelta(t, 0.5, n.X, 1e-9)
	require.InDelta(t, 0.5, n.Y, 1e-9)

	n, ok = g.normalized(sphere.LonLat{Lon: 90, Lat: 0}.Vector())
	require.True(t, ok)
	require.InDelta(t, 1, n.X, 1e-9)

	_, ok = g.normalized(sphere.LonLat{Lon: 180, Lat: 10}.Vector())
	require.False(t, ok)

	lon, lat, ok := newGlobe(30, 40).lonLat(r2.Point{X: 0.5, Y: 0.5})
	require.True(t, ok)
	require.InDelta(t, 40, lon, 1e-9)
	require.InDelta(t, 30, lat, 1e-9)

	_, _, ok = g.lonLat(r2.Point{X: 1, Y: 1})
	require.False(t, ok)
}
