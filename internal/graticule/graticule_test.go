package graticule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"geoproj/internal/mesh"
)

func TestGenerateDefault(t *testing.T) {
	m, err := Generate(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Equal(t, mesh.Line, m.Kind())
	// 12 meridians, parallels at -90..90 every 30 degrees.
	require.Len(t, m.Lines, 12+7)
	require.Len(t, m.Points, 12*181+7*361)

	first := m.Lines[0]
	require.Len(t, first, 181)
	require.Equal(t, mesh.Geographic(-180, -90, 0), m.Points[first[0]])
	require.Equal(t, mesh.Geographic(-180, 90, 0), m.Points[first[180]])

	last := m.Lines[len(m.Lines)-1]
	require.Equal(t, mesh.Geographic(-180, 90, 0), m.Points[last[0]])
	require.Equal(t, mesh.Geographic(180, 90, 0), m.Points[last[360]])

	color := m.CellData.Get(ColorAttr)
	require.NotNil(t, color)
	require.Equal(t, len(m.Lines), color.Len())
	for _, v := range color.Values {
		require.Zero(t, v)
	}
}

func TestGenerateWithoutPoles(t *testing.T) {
	cfg := Config{Spacing: 45, PointDistance: 5}
	m, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, m.Lines, 8+3)
	for _, c := range m.Lines[8:] {
		lat := m.Points[c[0]].Y
		require.True(t, lat > -90 && lat < 90, "parallel at %v", lat)
	}

	// Spacing that does not divide 180 never reaches the north pole.
	m, err = Generate(Config{Spacing: 25, PointDistance: 7, ParallelsForPoles: true})
	require.NoError(t, err)
	require.Len(t, m.Lines, 14+8)
	for _, c := range m.Lines[:14] {
		require.Len(t, c, 26)
	}
}

func TestGenerateInvalid(t *testing.T) {
	for _, cfg := range []Config{
		{Spacing: 0, PointDistance: 1},
		{Spacing: 30, PointDistance: -1},
		{Spacing: 200, PointDistance: 1},
	} {
		_, err := Generate(cfg)
		require.Error(t, err, "%+v", cfg)
	}
}
