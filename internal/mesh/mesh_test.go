package mesh

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func square() *Mesh {
	m := &Mesh{}
	for _, p := range [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}} {
		m.InsertPoint(Geographic(p[0], p[1], 0))
	}
	m.InsertCell(Polygon, []int{0, 1, 2, 3})
	return m
}

func TestKind(t *testing.T) {
	require.Equal(t, NoCells, (&Mesh{}).Kind())
	m := square()
	require.Equal(t, Polygon, m.Kind())
	require.Len(t, m.Cells(), 1)
	require.Equal(t, 1, m.NumCells())
	require.Equal(t, "polygon", m.Kind().String())
}

func TestInsertCellCopiesIDs(t *testing.T) {
	m := &Mesh{}
	ids := []int{0, 1}
	m.InsertCell(Line, ids)
	ids[0] = 5
	require.Equal(t, Cell{0, 1}, m.Lines[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Mesh
		want  error
	}{
		{"ok", square, nil},
		{"mixed", func() *Mesh {
			m := square()
			m.InsertCell(Vertex, []int{0})
			return m
		}, ErrMixedCells},
		{"index", func() *Mesh {
			m := square()
			m.Polys[0] = Cell{0, 1, 7}
			return m
		}, ErrCellIndex},
		{"point data", func() *Mesh {
			m := square()
			a := NewAttribute("t", 1)
			a.Append(1)
			m.PointData = Attributes{a}
			return m
		}, ErrAttributeLength},
		{"cell data", func() *Mesh {
			m := square()
			a := NewAttribute("c", 1)
			a.Append(1)
			a.Append(2)
			m.CellData = Attributes{a}
			return m
		}, ErrAttributeLength},
		{"shape", func() *Mesh {
			m := square()
			m.CellData = Attributes{{Name: "rgb", NumComponents: 3, Values: []float64{1, 2}}}
			return m
		}, ErrAttributeShape},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.want, errors.Cause(err))
		})
	}
}

func TestAttributes(t *testing.T) {
	rgb := NewAttribute("rgb", 3)
	rgb.Append(1, 2, 3)
	rgb.Append(4)
	require.Equal(t, 2, rgb.Len())
	require.Equal(t, []float64{4, 0, 0}, rgb.Tuple(1))

	src := Attributes{rgb}
	dst := src.EmptyLike()
	require.Equal(t, 0, dst[0].Len())
	dst.AppendFrom(src, 0)
	dst.AppendFrom(src, 0)
	require.Equal(t, []float64{1, 2, 3, 1, 2, 3}, dst.Get("rgb").Values)

	cp := src.Clone()
	cp[0].Values[0] = 9
	require.Equal(t, 1.0, rgb.Values[0])
	require.Nil(t, src.Get("missing"))
}

func TestFromPath(t *testing.T) {
	m, err := FromPath([]float64{0, 10, 20}, []float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, Line, m.Kind())
	require.Equal(t, []Cell{{0, 1}, {1, 2}}, m.Lines)
	require.Equal(t, Geographic(20, 3, 0), m.Points[2])
	require.NoError(t, m.Validate())

	m, err = FromPath([]float64{5}, []float64{5})
	require.NoError(t, err)
	require.Equal(t, NoCells, m.Kind())

	_, err = FromPath([]float64{0, 1}, []float64{0})
	require.Error(t, err)
}

func TestFromSwaths(t *testing.T) {
	ccw := [4]float64{0, 1, 1, 0}
	ccwLat := [4]float64{0, 0, 1, 1}
	cw := [4]float64{10, 10, 11, 11}
	cwLat := [4]float64{0, 1, 1, 0}

	m, err := FromSwaths([][4]float64{ccw, cw}, [][4]float64{ccwLat, cwLat}, []float64{7, 8})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Equal(t, []Cell{{0, 1, 2, 3}, {7, 6, 5, 4}}, m.Polys)
	require.Equal(t, []float64{7, 8}, m.CellData.Get(ValueAttr).Values)
	require.Equal(t, Geographic(10, 1, 0), m.Points[5])

	_, err = FromSwaths([][4]float64{ccw}, [][4]float64{ccwLat}, nil)
	require.Error(t, err)
}

func TestFromGrid(t *testing.T) {
	lons := []float64{0, 10, 20}
	lats := []float64{0, 10}
	values := []float64{1, 2, 3, 4, 5, 6}

	m, err := FromGrid(lons, lats, values, 1, 0)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Len(t, m.Points, 12)
	require.Len(t, m.Polys, 6)
	require.Equal(t, Geographic(-5, -5, 1), m.Points[0])
	require.Equal(t, Geographic(25, 15, 1), m.Points[11])
	require.Equal(t, Cell{0, 1, 5, 4}, m.Polys[0])
	require.Equal(t, values, m.CellData.Get(ValueAttr).Values)

	m, err = FromGrid(lons, lats, values, 1, 0.5)
	require.NoError(t, err)
	require.Equal(t, 1.0, m.Points[0].Z)
	require.Equal(t, 1.5, m.Points[11].Z)
	// Corner between 1, 2, 4 and 5 averages to 3 of a 1..6 range.
	require.InDelta(t, 1.2, m.Points[5].Z, 1e-12)

	// Descending latitudes flip the winding back to counter-clockwise.
	m, err = FromGrid(lons, []float64{10, 0}, values, 1, 0)
	require.NoError(t, err)
	require.Equal(t, Cell{0, 4, 5, 1}, m.Polys[0])

	_, err = FromGrid([]float64{0}, lats, values[:2], 1, 0)
	require.Error(t, err)
	_, err = FromGrid(lons, lats, values[:5], 1, 0)
	require.Error(t, err)
}

func TestFromGridPolesAndWrap(t *testing.T) {
	var lons []float64
	for lon := -180.0; lon < 180; lon += 90 {
		lons = append(lons, lon+45)
	}
	lats := []float64{-45, 45}
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7}

	m, err := FromGrid(lons, lats, values, 1, 1)
	require.NoError(t, err)
	w := len(lons) + 1
	for i := 0; i < w; i++ {
		require.Equal(t, -90.0, m.Points[i].Y)
		require.InDelta(t, m.Points[0].Z, m.Points[i].Z, 1e-12)
		require.Equal(t, 90.0, m.Points[2*w+i].Y)
		require.InDelta(t, m.Points[2*w].Z, m.Points[2*w+i].Z, 1e-12)
	}
	require.InDelta(t, m.Points[w].Z, m.Points[2*w-1].Z, 1e-12)
}
