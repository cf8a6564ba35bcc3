package mesh

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var (
	ErrMixedCells      = errors.New("mesh mixes vertex, line and polygon cells")
	ErrAttributeLength = errors.New("attribute length does not match geometry")
	ErrAttributeShape  = errors.New("attribute values are not a whole number of tuples")
	ErrCellIndex       = errors.New("cell references a point out of range")
)

// CellKind is the single kind of cell a mesh carries.
type CellKind int

const (
	NoCells CellKind = iota
	Vertex
	Line
	Polygon
)

func (k CellKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Line:
		return "line"
	case Polygon:
		return "polygon"
	}
	return "none"
}

// Cell is an ordered list of point ids. Polygons are implicitly closed.
type Cell []int

// Mesh holds points and cells of one kind with their attribute arrays.
//
// Geographic meshes store a point as {X: lon, Y: lat, Z: height} in degrees.
// Projected meshes store normalized {x, y, height} or Cartesian coordinates.
type Mesh struct {
	Points []r3.Vector
	Verts  []Cell
	Lines  []Cell
	Polys  []Cell

	PointData Attributes
	CellData  Attributes
}

// Geographic packs lon/lat/height into a point.
func Geographic(lon, lat, height float64) r3.Vector {
	return r3.Vector{X: lon, Y: lat, Z: height}
}

func (m *Mesh) Kind() CellKind {
	switch {
	case len(m.Verts) > 0:
		return Vertex
	case len(m.Lines) > 0:
		return Line
	case len(m.Polys) > 0:
		return Polygon
	}
	return NoCells
}

// Cells returns the cells of the mesh's kind.
func (m *Mesh) Cells() []Cell {
	switch m.Kind() {
	case Vertex:
		return m.Verts
	case Line:
		return m.Lines
	case Polygon:
		return m.Polys
	}
	return nil
}

func (m *Mesh) NumCells() int {
	return len(m.Verts) + len(m.Lines) + len(m.Polys)
}

// InsertPoint appends a point and returns its id.
func (m *Mesh) InsertPoint(p r3.Vector) int {
	m.Points = append(m.Points, p)
	return len(m.Points) - 1
}

// InsertCell appends a copy of ids as a cell of the given kind.
func (m *Mesh) InsertCell(kind CellKind, ids []int) {
	c := make(Cell, len(ids))
	copy(c, ids)
	switch kind {
	case Vertex:
		m.Verts = append(m.Verts, c)
	case Line:
		m.Lines = append(m.Lines, c)
	case Polygon:
		m.Polys = append(m.Polys, c)
	}
}

// Validate checks that the mesh can be transformed: one cell kind, cell ids
// in range and attribute arrays matching their geometry.
func (m *Mesh) Validate() error {
	kinds := 0
	for _, cs := range [][]Cell{m.Verts, m.Lines, m.Polys} {
		if len(cs) > 0 {
			kinds++
		}
	}
	if kinds > 1 {
		return ErrMixedCells
	}
	for i, c := range m.Cells() {
		for _, id := range c {
			if id < 0 || id >= len(m.Points) {
				return errors.Wrapf(ErrCellIndex, "cell %d id %d (%d points)", i, id, len(m.Points))
			}
		}
	}
	if err := m.PointData.check(len(m.Points)); err != nil {
		return errors.Wrap(err, "point data")
	}
	if err := m.CellData.check(m.NumCells()); err != nil {
		return errors.Wrap(err, "cell data")
	}
	return nil
}

// FromPath builds a line mesh joining consecutive lon/lat pairs with
// two-point segments, so each segment is cut and refined on its own.
func FromPath(lons, lats []float64) (*Mesh, error) {
	if len(lons) != len(lats) {
		return nil, errors.Errorf("path has %d longitudes and %d latitudes", len(lons), len(lats))
	}
	m := &Mesh{Points: make([]r3.Vector, len(lons))}
	for i := range lons {
		m.Points[i] = Geographic(lons[i], lats[i], 0)
	}
	for i := 1; i < len(lons); i++ {
		m.InsertCell(Line, []int{i - 1, i})
	}
	return m, nil
}
