package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"geoproj/internal/mesh"
)

// table is a CSV file with a header row, columns looked up by lower-case
// name.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv")
	}
	if len(recs) < 2 {
		return nil, errors.New("csv: no data rows")
	}
	t := &table{cols: map[string]int{}, rows: recs[1:]}
	for i, h := range recs[0] {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return t, nil
}

// floats parses the named columns of every row. Rows with a missing or
// malformed field are an error: cell layouts cannot skip rows.
func (t *table) floats(names ...string) ([][]float64, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		c, ok := t.cols[n]
		if !ok {
			return nil, errors.Errorf("csv: column %q not found", n)
		}
		idx[i] = c
	}
	out := make([][]float64, len(t.rows))
	for r, rec := range t.rows {
		out[r] = make([]float64, len(idx))
		for i, c := range idx {
			if c >= len(rec) {
				return nil, errors.Errorf("csv: row %d has no %q", r+1, names[i])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "csv: row %d %q", r+1, names[i])
			}
			out[r][i] = v
		}
	}
	return out, nil
}

// LoadSwathCSV reads sensor footprints, one per row, from the columns
// lon0..lon3, lat0..lat3 and value, corners in scan order.
func LoadSwathCSV(path string) (*mesh.Mesh, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	rows, err := t.floats("lon0", "lon1", "lon2", "lon3", "lat0", "lat1", "lat2", "lat3", "value")
	if err != nil {
		return nil, err
	}
	lons := make([][4]float64, len(rows))
	lats := make([][4]float64, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		copy(lons[i][:], r[0:4])
		copy(lats[i][:], r[4:8])
		values[i] = r[8]
	}
	return mesh.FromSwaths(lons, lats, values)
}

// LoadGridCSV reads a regular grid of cell centres from lon, lat and value
// columns, one centre per row in any order. Longitudes and latitudes keep
// the order they first appear in; every combination must be present once.
func LoadGridCSV(path string, refHeight, factor float64) (*mesh.Mesh, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	rows, err := t.floats("lon", "lat", "value")
	if err != nil {
		return nil, err
	}
	lonAt, latAt := map[float64]int{}, map[float64]int{}
	var lons, lats []float64
	for _, r := range rows {
		if _, ok := lonAt[r[0]]; !ok {
			lonAt[r[0]] = len(lons)
			lons = append(lons, r[0])
		}
		if _, ok := latAt[r[1]]; !ok {
			latAt[r[1]] = len(lats)
			lats = append(lats, r[1])
		}
	}
	w := len(lons)
	if len(rows) != w*len(lats) {
		return nil, errors.Errorf("csv: %d rows do not fill a %dx%d grid", len(rows), w, len(lats))
	}
	values := make([]float64, len(rows))
	seen := make([]bool, len(rows))
	for _, r := range rows {
		i := latAt[r[1]]*w + lonAt[r[0]]
		if seen[i] {
			return nil, errors.Errorf("csv: centre (%v, %v) repeated", r[0], r[1])
		}
		seen[i] = true
		values[i] = r[2]
	}
	return mesh.FromGrid(lons, lats, values, refHeight, factor)
}
