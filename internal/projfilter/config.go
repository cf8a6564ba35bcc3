package projfilter

import (
	"math"

	"github.com/pkg/errors"

	"geoproj/internal/proj"
)

// Config selects the projection and tunes cutting and refinement.
type Config struct {
	Projection      proj.Kind
	CenterLatitude  float64
	CenterLongitude float64

	// ReferenceHeight is the sphere radius of the 3D embedding for points
	// without a positive height.
	ReferenceHeight float64
	// InterpolationDistance is the largest normalized distance (2D) allowed
	// between consecutive output points; in 3D it is scaled by 360 to
	// degrees of arc. Zero or negative disables refinement.
	InterpolationDistance float64
	// AzimuthalIgnorePolyDistance drops azimuthal polygons coming closer
	// than this many degrees to the point opposite the centre.
	AzimuthalIgnorePolyDistance float64
	// Eps is the arc distance in degrees under which an azimuthal point is
	// considered to sit on the opposite point and left unmapped. This is
	// stricter than the projection itself, which only rejects the exact
	// antipode; zero turns the extra check off.
	Eps float64
}

func DefaultConfig() Config {
	return Config{
		Projection:                  proj.Equirectangular,
		ReferenceHeight:             1.007,
		InterpolationDistance:       0.005,
		AzimuthalIgnorePolyDistance: 7,
		Eps:                         1e-5,
	}
}

func (c Config) Validate() error {
	if !knownKind(c.Projection) {
		return errors.Wrapf(proj.ErrUnknownKind, "kind %d", int(c.Projection))
	}
	if math.IsNaN(c.CenterLatitude) || c.CenterLatitude < -90 || c.CenterLatitude > 90 {
		return errors.Wrapf(proj.ErrInvalidCenter, "center latitude %v", c.CenterLatitude)
	}
	if math.IsNaN(c.CenterLongitude) || c.CenterLongitude < -180 || c.CenterLongitude > 180 {
		return errors.Wrapf(proj.ErrInvalidCenter, "center longitude %v", c.CenterLongitude)
	}
	if !(c.ReferenceHeight > 0) {
		return errors.Errorf("reference height must be positive, got %v", c.ReferenceHeight)
	}
	if math.IsNaN(c.InterpolationDistance) {
		return errors.New("interpolation distance is NaN")
	}
	if !(c.AzimuthalIgnorePolyDistance >= 0) {
		return errors.Errorf("azimuthal ignore distance must not be negative, got %v", c.AzimuthalIgnorePolyDistance)
	}
	if !(c.Eps >= 0) {
		return errors.Errorf("eps must not be negative, got %v", c.Eps)
	}
	return nil
}

// XYRatio is the height over width of the configured projection's extent.
func (c Config) XYRatio() float64 {
	return proj.ExtentFor(c.Projection).XYRatio()
}

// cutLongitude is the meridian opposite the centre, in [-180, 180).
func (c Config) cutLongitude() float64 {
	cut := c.CenterLongitude + 180
	if cut >= 180 {
		cut -= 360
	}
	return cut
}

func knownKind(k proj.Kind) bool {
	for _, known := range proj.Kinds() {
		if k == known {
			return true
		}
	}
	return false
}
