package proj

import "github.com/golang/geo/r2"

// Extent is the projected bounding box of the whole globe on a unit sphere.
type Extent struct {
	MinX, MaxX, MinY, MaxY float64
}

var extents = map[Kind]Extent{
	CylindricalEqualArea: {-3.1416, 3.1416, -1, 1},
	Equirectangular:      {-3.1416, 3.1416, -1.5710, 1.5710},
	Mollweide:            {-2.83, 2.83, -1.415, 1.415},
	Robinson:             {-2.6667, 2.6667, -1.3525, 1.3525},
	LambertAzimuthal:     {-2, 2, -2, 2},
	AzimuthalEquidistant: {-3.1416, 3.1416, -3.1416, 3.1416},
	Spherical3D:          {-1, 1, -1, 1},
}

// ExtentFor returns the extent of k, or the unit square around the origin
// for an unknown kind.
func ExtentFor(k Kind) Extent {
	if e, ok := extents[k]; ok {
		return e
	}
	return Extent{-1, 1, -1, 1}
}

// Normalize maps projected coordinates into [0,1]^2.
func (e Extent) Normalize(p r2.Point) r2.Point {
	return r2.Point{
		X: (p.X - e.MinX) / (e.MaxX - e.MinX),
		Y: (p.Y - e.MinY) / (e.MaxY - e.MinY),
	}
}

func (e Extent) Denormalize(p r2.Point) r2.Point {
	return r2.Point{
		X: e.MinX + p.X*(e.MaxX-e.MinX),
		Y: e.MinY + p.Y*(e.MaxY-e.MinY),
	}
}

// XYRatio is height over width.
func (e Extent) XYRatio() float64 {
	return (e.MaxY - e.MinY) / (e.MaxX - e.MinX)
}
