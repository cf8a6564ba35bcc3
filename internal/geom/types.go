package geom

import (
	"github.com/pkg/errors"

	"geoproj/internal/mesh"
)

// FeatureAttr names the cell attribute holding the source feature or row
// index of every cell.
const FeatureAttr = "feature"

var ErrNoGeometry = errors.New("no geometries found")

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data holds geographic layers, one mesh per cell kind. Empty layers are nil.
type Data struct {
	Points   *mesh.Mesh
	Lines    *mesh.Mesh
	Polygons *mesh.Mesh
	BBox     BBox
}

// Layers returns the non-empty layers in drawing order.
func (d Data) Layers() []*mesh.Mesh {
	var out []*mesh.Mesh
	for _, m := range []*mesh.Mesh{d.Polygons, d.Lines, d.Points} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (d Data) Empty() bool { return len(d.Layers()) == 0 }

// collector turns coordinate lists into layer meshes.
type collector struct {
	points, lines, polys *mesh.Mesh
	bbox                 BBox
	seen                 bool
}

func newCollector() *collector {
	mk := func() *mesh.Mesh {
		return &mesh.Mesh{CellData: mesh.Attributes{mesh.NewAttribute(FeatureAttr, 1)}}
	}
	return &collector{points: mk(), lines: mk(), polys: mk()}
}

// coord splits a lon, lat[, height] tuple. ok is false for short tuples.
func coord(c []float64, zIndex int) (lon, lat, h float64, ok bool) {
	if len(c) < 2 {
		return 0, 0, 0, false
	}
	if zIndex > 0 && zIndex < len(c) {
		h = c[zIndex]
	}
	return c[0], c[1], h, true
}

func (c *collector) insert(m *mesh.Mesh, lon, lat, h float64) int {
	if !c.seen {
		c.bbox = BBox{MinX: lon, MinY: lat, MaxX: lon, MaxY: lat}
		c.seen = true
	} else {
		if lon < c.bbox.MinX {
			c.bbox.MinX = lon
		}
		if lat < c.bbox.MinY {
			c.bbox.MinY = lat
		}
		if lon > c.bbox.MaxX {
			c.bbox.MaxX = lon
		}
		if lat > c.bbox.MaxY {
			c.bbox.MaxY = lat
		}
	}
	return m.InsertPoint(mesh.Geographic(lon, lat, h))
}

func (c *collector) addPoint(pt []float64, zIndex, feature int) {
	lon, lat, h, ok := coord(pt, zIndex)
	if !ok {
		return
	}
	id := c.insert(c.points, lon, lat, h)
	c.points.InsertCell(mesh.Vertex, []int{id})
	c.points.CellData[0].Append(float64(feature))
}

func (c *collector) addLine(pts [][]float64, zIndex, feature int) {
	c.addCell(c.lines, mesh.Line, pts, zIndex, feature, 2)
}

// addRing adds a polygon ring; a repeated closing coordinate is dropped.
func (c *collector) addRing(pts [][]float64, zIndex, feature int) {
	if n := len(pts); n > 1 && len(pts[0]) >= 2 && len(pts[n-1]) >= 2 &&
		pts[0][0] == pts[n-1][0] && pts[0][1] == pts[n-1][1] {
		pts = pts[:n-1]
	}
	c.addCell(c.polys, mesh.Polygon, pts, zIndex, feature, 3)
}

func (c *collector) addCell(m *mesh.Mesh, kind mesh.CellKind, pts [][]float64, zIndex, feature, min int) {
	var valid [][]float64
	for _, p := range pts {
		if len(p) >= 2 {
			valid = append(valid, p)
		}
	}
	if len(valid) < min {
		return
	}
	ids := make([]int, 0, len(valid))
	for _, p := range valid {
		lon, lat, h, _ := coord(p, zIndex)
		ids = append(ids, c.insert(m, lon, lat, h))
	}
	m.InsertCell(kind, ids)
	m.CellData[0].Append(float64(feature))
}

func (c *collector) data() (Data, error) {
	d := Data{BBox: c.bbox}
	if c.points.NumCells() > 0 {
		d.Points = c.points
	}
	if c.lines.NumCells() > 0 {
		d.Lines = c.lines
	}
	if c.polys.NumCells() > 0 {
		d.Polygons = c.polys
	}
	if d.Empty() {
		return Data{}, ErrNoGeometry
	}
	return d, nil
}
