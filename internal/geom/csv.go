package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns a point
// layer. Column detection: lat|latitude|y, lon|lng|long|longitude|x and an
// optional alt|altitude|height|z (case-insensitive). The feature index of a
// point is its data row.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Data{}, errors.Wrap(err, "csv")
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idxLat, idxLon, idxH := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "alt", "altitude", "height", "z":
			if idxH == -1 {
				idxH = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Data{}, errors.New("csv: latitude/longitude columns not found")
	}
	c := newCollector()
	for row, rec := range recs[1:] {
		if idxLon >= len(rec) || idxLat >= len(rec) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(rec[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(rec[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pt := []float64{lon, lat}
		if idxH >= 0 && idxH < len(rec) {
			if h, err := strconv.ParseFloat(strings.TrimSpace(rec[idxH]), 64); err == nil {
				pt = append(pt, h)
			}
		}
		c.addPoint(pt, 2, row)
	}
	d, err := c.data()
	if err != nil {
		return Data{}, errors.New("csv: no valid points parsed")
	}
	return d, nil
}
