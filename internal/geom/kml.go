package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Point      *kmlCoords `xml:"Point"`
	LineString *kmlCoords `xml:"LineString"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   []kmlPlacemark `xml:"Document>Placemark"`
	Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
}

// LoadKML extracts Point and LineString placemarks from a KML file.
// KML coordinates are "lon,lat[,alt]" tuples separated by whitespace; the
// altitude becomes the point height.
func LoadKML(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(b, &doc); err != nil {
		return Data{}, errors.Wrap(err, "kml")
	}
	c := newCollector()
	all := append(append(doc.Placemarks, doc.Document...), doc.Folders...)
	for i, pm := range all {
		if pm.Point != nil {
			for _, pt := range kmlTuples(pm.Point.Coordinates) {
				c.addPoint(pt, 2, i)
			}
		}
		if pm.LineString != nil {
			c.addLine(kmlTuples(pm.LineString.Coordinates), 2, i)
		}
	}
	d, err := c.data()
	if err != nil {
		return Data{}, errors.New("kml: no placemarks found")
	}
	return d, nil
}

func kmlTuples(s string) [][]float64 {
	var out [][]float64
	for _, tuple := range strings.Fields(s) {
		var vals []float64
		for _, v := range strings.Split(tuple, ",") {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				vals = nil
				break
			}
			vals = append(vals, f)
		}
		if len(vals) >= 2 {
			out = append(out, vals)
		}
	}
	return out
}
