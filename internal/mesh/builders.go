package mesh

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// ValueAttr is the cell attribute FromSwaths and FromGrid fill with the
// measured value of each quad.
const ValueAttr = "value"

// gridEps is the tolerance in degrees for pole rows and wrap-around columns.
const gridEps = 1e-3

// FromSwaths builds one quad per sensor footprint from its four corners,
// listed in scan order. Footprints scanned backwards run clockwise and are
// reversed so every quad is counter-clockwise. values holds one value per
// footprint.
func FromSwaths(cornerLon, cornerLat [][4]float64, values []float64) (*Mesh, error) {
	if len(cornerLon) != len(cornerLat) || len(cornerLon) != len(values) {
		return nil, errors.Errorf("swaths have %d longitude, %d latitude and %d value rows",
			len(cornerLon), len(cornerLat), len(values))
	}
	m := &Mesh{Points: make([]r3.Vector, 0, 4*len(values))}
	value := NewAttribute(ValueAttr, 1)
	for s := range cornerLon {
		var ids [4]int
		for c := 0; c < 4; c++ {
			ids[c] = m.InsertPoint(Geographic(cornerLon[s][c], cornerLat[s][c], 0))
		}
		if backscan(cornerLon[s], cornerLat[s]) {
			ids[0], ids[1], ids[2], ids[3] = ids[3], ids[2], ids[1], ids[0]
		}
		m.InsertCell(Polygon, ids[:])
		value.Append(values[s])
	}
	m.CellData = Attributes{value}
	return m, nil
}

// backscan reports whether a footprint's corners run clockwise seen from
// outside the sphere.
func backscan(lon, lat [4]float64) bool {
	at := func(i int) s2.Point { return s2.PointFromLatLng(s2.LatLngFromDegrees(lat[i], lon[i])) }
	p, q, r := at(0), at(3), at(1)
	return p.Vector.Cross(q.Vector).Dot(r.Vector) > 0
}

// FromGrid builds a quad mesh over a regular grid of cell centres, values
// indexed [lat*len(lons)+lon]. Quad corners sit halfway between centres.
// With factor > 0 each corner's height rises from refHeight by factor times
// the normalized mean of the values around it; otherwise every corner sits
// at refHeight. Corners on a pole, and on both ends of a grid that wraps
// the globe, share one height.
func FromGrid(lons, lats, values []float64, refHeight, factor float64) (*Mesh, error) {
	w, h := len(lons), len(lats)
	if w < 2 || h < 2 {
		return nil, errors.Errorf("grid needs at least 2x2 centres, got %dx%d", w, h)
	}
	if len(values) != w*h {
		return nil, errors.Errorf("grid of %dx%d centres has %d values", w, h, len(values))
	}
	offLon := (lons[1] - lons[0]) / 2
	offLat := (lats[1] - lats[0]) / 2

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	scaled := factor > 0 && hi > lo

	// Corner (j, i) is point j*(w+1)+i.
	height := func(j, i int) float64 {
		if !scaled {
			return refHeight
		}
		sum, n := 0.0, 0
		for _, jj := range []int{j - 1, j} {
			for _, ii := range []int{i - 1, i} {
				if jj >= 0 && jj < h && ii >= 0 && ii < w {
					sum += values[jj*w+ii]
					n++
				}
			}
		}
		avg := math.Max(lo, math.Min(hi, sum/float64(n)))
		return refHeight + factor*(avg-lo)/(hi-lo)
	}

	m := &Mesh{}
	for j := 0; j <= h; j++ {
		lat := lats[h-1] + offLat
		if j < h {
			lat = lats[j] - offLat
		}
		lat = math.Max(-90, math.Min(90, lat))
		for i := 0; i <= w; i++ {
			lon := lons[w-1] + offLon
			if i < w {
				lon = lons[i] - offLon
			}
			m.InsertPoint(Geographic(lon, lat, height(j, i)))
		}
	}

	if scaled {
		row := func(j int) {
			sum := 0.0
			for i := 0; i <= w; i++ {
				sum += m.Points[j*(w+1)+i].Z
			}
			for i := 0; i <= w; i++ {
				m.Points[j*(w+1)+i].Z = sum / float64(w+1)
			}
		}
		if math.Abs(lats[0]-offLat) > 90-gridEps {
			row(0)
		}
		if math.Abs(lats[h-1]+offLat) > 90-gridEps {
			row(h)
		}
		if math.Abs(math.Abs(lons[0]-lons[w-1])+2*math.Abs(offLon)-360) < gridEps {
			for j := 0; j <= h; j++ {
				a, b := &m.Points[j*(w+1)], &m.Points[j*(w+1)+w]
				a.Z = (a.Z + b.Z) / 2
				b.Z = a.Z
			}
		}
	}

	rotation := (lats[0] < lats[1]) != (lons[0] < lons[1])
	value := NewAttribute(ValueAttr, 1)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			a, b := j*(w+1)+i, j*(w+1)+i+1
			c, d := b+w+1, a+w+1
			if rotation {
				m.InsertCell(Polygon, []int{a, d, c, b})
			} else {
				m.InsertCell(Polygon, []int{a, b, c, d})
			}
			value.Append(values[j*w+i])
		}
	}
	m.CellData = Attributes{value}
	return m, nil
}
