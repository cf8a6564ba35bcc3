package geom

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	geojson "github.com/paulmach/go.geojson"
)

// geoJSONZ is the index of the altitude in a GeoJSON position.
const geoJSONZ = 2

// LoadGeoJSON reads a GeoJSON file (FeatureCollection, Feature or bare
// geometry) into layers. Cells carry the index of their feature.
func LoadGeoJSON(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	fc, err := readFeatures(b)
	if err != nil {
		return Data{}, errors.Wrapf(err, "reading %s", path)
	}
	c := newCollector()
	for i, f := range fc.Features {
		if f != nil && f.Geometry != nil {
			walkGeoJSON(c, f.Geometry, i)
		}
	}
	return c.data()
}

// LoadGeoJSONProperties returns the properties of every feature, in the
// same order as the feature indices of LoadGeoJSON.
func LoadGeoJSONProperties(path string) ([]map[string]interface{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := readFeatures(b)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	props := make([]map[string]interface{}, len(fc.Features))
	for i, f := range fc.Features {
		if f != nil {
			props[i] = f.Properties
		}
	}
	return props, nil
}

// readFeatures normalizes any GeoJSON object into a feature collection.
func readFeatures(b []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(b)
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.AddFeature(f)
		return fc, nil
	case "":
		return nil, errors.New("missing geojson type")
	}
	g, err := geojson.UnmarshalGeometry(b)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewFeature(g))
	return fc, nil
}

func walkGeoJSON(c *collector, g *geojson.Geometry, feature int) {
	switch g.Type {
	case geojson.GeometryPoint:
		c.addPoint(g.Point, geoJSONZ, feature)
	case geojson.GeometryMultiPoint:
		for _, p := range g.MultiPoint {
			c.addPoint(p, geoJSONZ, feature)
		}
	case geojson.GeometryLineString:
		c.addLine(g.LineString, geoJSONZ, feature)
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			c.addLine(ls, geoJSONZ, feature)
		}
	case geojson.GeometryPolygon:
		if len(g.Polygon) > 0 {
			c.addRing(g.Polygon[0], geoJSONZ, feature)
		}
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			if len(poly) > 0 {
				c.addRing(poly[0], geoJSONZ, feature)
			}
		}
	case geojson.GeometryCollection:
		for _, member := range g.Geometries {
			if member != nil {
				walkGeoJSON(c, member, feature)
			}
		}
	}
}
