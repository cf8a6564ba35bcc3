package geom

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ParseWKT parses one WKT geometry, including multi-geometries and
// GEOMETRYCOLLECTION, into layers. Members of a collection get consecutive
// feature indices.
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Data{}, errors.Wrap(err, "parsing wkt")
	}
	c := newCollector()
	feature := 0
	var walk func(g gogeom.T)
	walk = func(g gogeom.T) {
		z := g.Layout().ZIndex()
		switch g := g.(type) {
		case *gogeom.Point:
			if !g.Empty() {
				c.addPoint(g.Coords(), z, feature)
			}
		case *gogeom.MultiPoint:
			for _, p := range g.Coords() {
				c.addPoint(p, z, feature)
			}
		case *gogeom.LineString:
			c.addLine(flatten1(g.Coords()), z, feature)
		case *gogeom.MultiLineString:
			for _, ls := range g.Coords() {
				c.addLine(flatten1(ls), z, feature)
			}
		case *gogeom.Polygon:
			addPolygon(c, g.Coords(), z, feature)
		case *gogeom.MultiPolygon:
			for _, poly := range g.Coords() {
				addPolygon(c, poly, z, feature)
			}
		case *gogeom.GeometryCollection:
			for _, member := range g.Geoms() {
				walk(member)
				feature++
			}
		}
	}
	walk(g)
	return c.data()
}

// LoadWKT reads a file holding one WKT geometry.
func LoadWKT(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKT(string(b))
}

func flatten1(cs []gogeom.Coord) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

// addPolygon keeps the outer ring only; holes cannot be expressed by a
// single polygon cell.
func addPolygon(c *collector, rings [][]gogeom.Coord, z, feature int) {
	if len(rings) == 0 {
		return
	}
	c.addRing(flatten1(rings[0]), z, feature)
}
