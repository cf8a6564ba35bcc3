package geom

import (
	"io"
	"math"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"geoproj/internal/mesh"
)

// WriteGeoJSON writes every cell of a projected mesh as a feature. Planar
// meshes are written as x/y, 3D meshes (xyz true) as x/y/z. Cells touching
// an unmapped point are skipped. Single-component cell attributes become
// feature properties.
func WriteGeoJSON(w io.Writer, meshes []*mesh.Mesh, xyz bool) error {
	layout, stride := gogeom.XY, 2
	if xyz {
		layout, stride = gogeom.XYZ, 3
	}
	fc := &geojson.FeatureCollection{}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		kind := m.Kind()
		for ci, cell := range m.Cells() {
			flat := make([]float64, 0, (len(cell)+1)*stride)
			ok := true
			for _, id := range cell {
				p := m.Points[id]
				if math.IsNaN(p.X) || math.IsNaN(p.Y) {
					ok = false
					break
				}
				flat = append(flat, p.X, p.Y)
				if xyz {
					flat = append(flat, p.Z)
				}
			}
			if !ok || len(cell) == 0 {
				continue
			}
			var g gogeom.T
			switch kind {
			case mesh.Vertex:
				g = gogeom.NewPointFlat(layout, flat[:stride])
			case mesh.Line:
				if len(cell) < 2 {
					continue
				}
				g = gogeom.NewLineStringFlat(layout, flat)
			case mesh.Polygon:
				if len(cell) < 3 {
					continue
				}
				// GeoJSON rings repeat their first position.
				flat = append(flat, flat[:stride]...)
				g = gogeom.NewPolygonFlat(layout, flat, []int{len(flat)})
			}
			fc.Features = append(fc.Features, &geojson.Feature{
				Geometry:   g,
				Properties: cellProperties(m.CellData, ci),
			})
		}
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "writing geojson")
	}
	return nil
}

func cellProperties(as mesh.Attributes, cell int) map[string]interface{} {
	props := map[string]interface{}{}
	for _, a := range as {
		if a.NumComponents != 1 || cell >= a.Len() {
			continue
		}
		if v := a.Tuple(cell)[0]; !math.IsNaN(v) && !math.IsInf(v, 0) {
			props[a.Name] = v
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}
