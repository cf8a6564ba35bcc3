// Package proj implements the map projections used to flatten geographic
// meshes, on a unit sphere, together with the table of their global extents
// used to normalize projected coordinates into [0,1]^2.
package proj

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"geoproj/internal/sphere"
)

var (
	ErrUnknownKind   = errors.New("unknown projection")
	ErrNotPlanar     = errors.New("projection has no planar form")
	ErrInvalidCenter = errors.New("projection center out of range")
	ErrUnmappable    = errors.New("point cannot be mapped")
)

const rad = math.Pi / 180

// Projection maps lon/lat degrees to raw projected coordinates and back.
// ok is false for points the projection cannot map.
type Projection interface {
	Kind() Kind
	Extent() Extent
	Forward(lon, lat float64) (p r2.Point, ok bool)
	Inverse(p r2.Point) (lon, lat float64, ok bool)
}

// New builds the projection of kind k centred on (centerLat, centerLon).
// Cylindrical projections only use the centre longitude.
func New(k Kind, centerLat, centerLon float64) (Projection, error) {
	if !k.valid() {
		return nil, errors.Wrapf(ErrUnknownKind, "kind %d", int(k))
	}
	if !k.IsPlanar() {
		return nil, errors.Wrapf(ErrNotPlanar, "%s", k)
	}
	if math.IsNaN(centerLat) || math.IsNaN(centerLon) ||
		centerLat < -90 || centerLat > 90 || centerLon < -180 || centerLon > 180 {
		return nil, errors.Wrapf(ErrInvalidCenter, "lat %v lon %v", centerLat, centerLon)
	}
	if k.IsAzimuthal() {
		s, c := math.Sincos(centerLat * rad)
		return &azimuthal{kind: k, lon0: centerLon, sinPhi0: s, cosPhi0: c}, nil
	}
	return newCylindrical(k, centerLon), nil
}

// Forward projects (lon, lat) and normalizes the result into [0,1]^2.
func Forward(k Kind, centerLat, centerLon, lon, lat float64) (r2.Point, error) {
	p, err := New(k, centerLat, centerLon)
	if err != nil {
		return r2.Point{}, err
	}
	xy, ok := p.Forward(lon, lat)
	if !ok {
		return r2.Point{}, errors.Wrapf(ErrUnmappable, "lon %v lat %v", lon, lat)
	}
	return p.Extent().Normalize(xy), nil
}

// Inverse maps a normalized point back to lon/lat degrees, clamped to
// [-180,180] and [-90,90].
func Inverse(k Kind, centerLat, centerLon float64, n r2.Point) (lon, lat float64, err error) {
	p, err := New(k, centerLat, centerLon)
	if err != nil {
		return 0, 0, err
	}
	if n.X < 0 || n.X > 1 || n.Y < 0 || n.Y > 1 {
		return 0, 0, errors.Wrapf(ErrUnmappable, "normalized point %v", n)
	}
	lon, lat, ok := p.Inverse(p.Extent().Denormalize(n))
	if !ok {
		return 0, 0, errors.Wrapf(ErrUnmappable, "normalized point %v", n)
	}
	return clamp(lon, -180, 180), clamp(lat, -90, 90), nil
}

func validLat(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// relLon is lon relative to lon0 in radians, in [-pi, pi).
func relLon(lon, lon0 float64) float64 {
	return sphere.WrapLon(lon-lon0) * rad
}

func absLon(lam, lon0 float64) float64 {
	return sphere.WrapLon(lam/rad + lon0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
