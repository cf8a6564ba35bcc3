package proj

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var planar = []Kind{
	CylindricalEqualArea, Equirectangular, Mollweide, Robinson,
	LambertAzimuthal, AzimuthalEquidistant,
}

func TestRoundTrip(t *testing.T) {
	centers := [][2]float64{{0, 0}, {30, 20}, {-45, -100}}
	for _, k := range planar {
		for _, c := range centers {
			for lon := -170.0; lon <= 170; lon += 20 {
				for lat := -80.0; lat <= 80; lat += 20 {
					xy, err := Forward(k, c[0], c[1], lon, lat)
					require.NoError(t, err, "%s center %v at (%v, %v)", k, c, lon, lat)
					gotLon, gotLat, err := Inverse(k, c[0], c[1], xy)
					require.NoError(t, err, "%s center %v at (%v, %v)", k, c, lon, lat)
					require.InDelta(t, lat, gotLat, 1e-6, "%s center %v at (%v, %v)", k, c, lon, lat)
					require.InDelta(t, lon, gotLon, 1e-6, "%s center %v at (%v, %v)", k, c, lon, lat)
				}
			}
		}
	}
}

func TestNormalizedRange(t *testing.T) {
	for _, k := range planar {
		p, err := New(k, 0, 0)
		require.NoError(t, err)
		for lon := -180.0; lon <= 180; lon += 5 {
			for lat := -90.0; lat <= 90; lat += 5 {
				xy, ok := p.Forward(lon, lat)
				if !ok {
					require.True(t, k.IsAzimuthal(), "%s undefined at (%v, %v)", k, lon, lat)
					continue
				}
				n := p.Extent().Normalize(xy)
				require.True(t, n.X >= 0 && n.X <= 1 && n.Y >= 0 && n.Y <= 1,
					"%s (%v, %v) -> %v", k, lon, lat, n)
			}
		}
	}
}

func TestCenterMapsToMiddle(t *testing.T) {
	for _, k := range planar {
		n, err := Forward(k, 0, 25, 25, 0)
		require.NoError(t, err)
		require.InDelta(t, 0.5, n.X, 1e-4, "%s", k)
		require.InDelta(t, 0.5, n.Y, 1e-4, "%s", k)
	}
}

func TestAzimuthalAntipode(t *testing.T) {
	for _, k := range []Kind{LambertAzimuthal, AzimuthalEquidistant} {
		_, err := Forward(k, 40, 10, -170, -40)
		require.Equal(t, ErrUnmappable, errors.Cause(err), "%s", k)
	}
}

func TestInverseOffMap(t *testing.T) {
	_, _, err := Inverse(Mollweide, 0, 0, r2.Point{X: 0.01, Y: 0.99})
	require.Equal(t, ErrUnmappable, errors.Cause(err))
	_, _, err = Inverse(LambertAzimuthal, 0, 0, r2.Point{X: 1, Y: 1})
	require.Equal(t, ErrUnmappable, errors.Cause(err))
	_, _, err = Inverse(Equirectangular, 0, 0, r2.Point{X: 1.5, Y: 0.5})
	require.Equal(t, ErrUnmappable, errors.Cause(err))

	lon, lat, err := Inverse(Equirectangular, 0, 0, r2.Point{X: 1, Y: 1})
	require.NoError(t, err)
	require.LessOrEqual(t, lat, 90.0)
	require.LessOrEqual(t, lon, 180.0)
}

func TestNewErrors(t *testing.T) {
	_, err := New(Kind(99), 0, 0)
	require.Equal(t, ErrUnknownKind, errors.Cause(err))
	_, err = New(Spherical3D, 0, 0)
	require.Equal(t, ErrNotPlanar, errors.Cause(err))
	_, err = New(Mollweide, 91, 0)
	require.Equal(t, ErrInvalidCenter, errors.Cause(err))
	_, err = New(Robinson, 0, 200)
	require.Equal(t, ErrInvalidCenter, errors.Cause(err))
}

func TestExtents(t *testing.T) {
	tests := []struct {
		k    Kind
		want Extent
	}{
		{CylindricalEqualArea, Extent{-3.1416, 3.1416, -1, 1}},
		{Equirectangular, Extent{-3.1416, 3.1416, -1.5710, 1.5710}},
		{Mollweide, Extent{-2.83, 2.83, -1.415, 1.415}},
		{Robinson, Extent{-2.6667, 2.6667, -1.3525, 1.3525}},
		{LambertAzimuthal, Extent{-2, 2, -2, 2}},
		{AzimuthalEquidistant, Extent{-3.1416, 3.1416, -3.1416, 3.1416}},
		{Spherical3D, Extent{-1, 1, -1, 1}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ExtentFor(tc.k), "%s", tc.k)
	}
	e := ExtentFor(Equirectangular)
	require.InDelta(t, 0.5, e.XYRatio(), 1e-4)
	p := r2.Point{X: 1.2, Y: -0.3}
	require.InDelta(t, p.X, e.Denormalize(e.Normalize(p)).X, 1e-12)
	require.InDelta(t, p.Y, e.Denormalize(e.Normalize(p)).Y, 1e-12)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
		got, err = ParseKind(k.Short())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	got, err := ParseKind(" Plate_Carree ")
	require.NoError(t, err)
	require.Equal(t, Equirectangular, got)

	_, err = ParseKind("mercator")
	require.Equal(t, ErrUnknownKind, errors.Cause(err))
}

func TestKindFamilies(t *testing.T) {
	require.True(t, Robinson.IsCylindrical())
	require.False(t, Robinson.IsAzimuthal())
	require.True(t, AzimuthalEquidistant.IsAzimuthal())
	require.False(t, Spherical3D.IsPlanar())
	require.Equal(t, "unknown", Kind(0).String())
}
