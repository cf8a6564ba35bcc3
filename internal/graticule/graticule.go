// Package graticule generates a lon/lat grid of meridians and parallels as
// a geographic line mesh, ready to be projected like any other layer.
package graticule

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"geoproj/internal/mesh"
)

// ColorAttr is the per-line scalar attribute; every line gets 0.
const ColorAttr = "color"

type Config struct {
	// Spacing is the distance in degrees between neighbouring meridians
	// and between neighbouring parallels.
	Spacing float64
	// PointDistance is the sampling step in degrees along each line.
	PointDistance float64
	// ParallelsForPoles adds the degenerate parallels at -90 and 90.
	ParallelsForPoles bool
}

func DefaultConfig() Config {
	return Config{Spacing: 30, PointDistance: 1, ParallelsForPoles: true}
}

func (c Config) Validate() error {
	if !(c.Spacing > 0) || c.Spacing > 180 || math.IsInf(c.Spacing, 0) {
		return errors.Errorf("graticule spacing must be in (0, 180], got %v", c.Spacing)
	}
	if !(c.PointDistance > 0) || c.PointDistance > 180 || math.IsInf(c.PointDistance, 0) {
		return errors.Errorf("graticule point distance must be in (0, 180], got %v", c.PointDistance)
	}
	return nil
}

// Generate builds the grid. Meridians run south to north starting at
// longitude -180; parallels run west to east starting at latitude -90.
func Generate(cfg Config) (*mesh.Mesh, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	meridians := int(360 / cfg.Spacing)
	perMeridian := int(180/cfg.PointDistance) + 1
	perParallel := int(360/cfg.PointDistance) + 1

	var lats []float64
	for j := 0; ; j++ {
		lat := float64(j)*cfg.Spacing - 90
		if lat > 90 {
			break
		}
		if math.Abs(lat) == 90 && !cfg.ParallelsForPoles {
			continue
		}
		lats = append(lats, lat)
	}

	color := mesh.NewAttribute(ColorAttr, 1)
	m := &mesh.Mesh{
		Points:   make([]r3.Vector, 0, meridians*perMeridian+len(lats)*perParallel),
		CellData: mesh.Attributes{color},
	}
	line := func(n int, at func(i int) (lon, lat float64)) {
		ids := make([]int, n)
		for i := range ids {
			lon, lat := at(i)
			ids[i] = m.InsertPoint(mesh.Geographic(lon, lat, 0))
		}
		m.InsertCell(mesh.Line, ids)
		color.Append(0)
	}
	for i := 0; i < meridians; i++ {
		lon := float64(i)*cfg.Spacing - 180
		line(perMeridian, func(j int) (float64, float64) {
			return lon, math.Min(90, float64(j)*cfg.PointDistance-90)
		})
	}
	for _, lat := range lats {
		lat := lat
		line(perParallel, func(j int) (float64, float64) {
			return math.Min(180, float64(j)*cfg.PointDistance-180), lat
		})
	}
	return m, nil
}
