package tui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"geoproj/internal/geom"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the currently selected path
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	const maxColW = 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, len(tcols))
		row[0] = fmt.Sprintf("%d", i+1)
		copy(row[1:], r)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes inspects the current dataset and returns (columns, rows)
func (m *Model) buildAttributes() ([]string, [][]string) {
	p := m.selPath
	if p == "" {
		// pasted WKT: no attributes available
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".geojson", ".json":
		return buildAttrsGeoJSON(p)
	case ".csv":
		return buildAttrsCSV(p)
	default:
		b := m.data.BBox
		cols := []string{"name", "path", "bbox", "projection", "counts"}
		vals := []string{
			filepath.Base(p), p,
			fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY),
			m.cfg.Projection.String(), m.counts(),
		}
		return cols, [][]string{vals}
	}
}

// buildAttrsGeoJSON unions the property keys of every feature, sorted.
func buildAttrsGeoJSON(path string) ([]string, [][]string) {
	props, err := geom.LoadGeoJSONProperties(path)
	if err != nil {
		return nil, nil
	}
	seen := map[string]bool{}
	var order []string
	for _, pm := range props {
		for k := range pm {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Strings(order)
	rows := make([][]string, 0, len(props))
	for _, pm := range props {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatProperty(pm[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatProperty(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

// buildAttrsCSV returns header as columns and each row as values
func buildAttrsCSV(path string) ([]string, [][]string) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil || len(recs) == 0 {
		return nil, nil
	}
	header := recs[0]
	rows := make([][]string, 0, len(recs)-1)
	for _, row := range recs[1:] {
		vals := make([]string, len(header))
		copy(vals, row)
		rows = append(rows, vals)
	}
	return header, rows
}
