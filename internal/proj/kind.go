package proj

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind selects one of the supported projections.
type Kind int

const (
	CylindricalEqualArea Kind = iota + 1
	Equirectangular
	Mollweide
	Robinson
	LambertAzimuthal
	AzimuthalEquidistant
	Spherical3D
)

var kindNames = map[Kind][2]string{
	CylindricalEqualArea: {"cylindrical-equal-area", "cea"},
	Equirectangular:      {"plate-carree", "eqc"},
	Mollweide:            {"mollweide", "moll"},
	Robinson:             {"robinson", "robin"},
	LambertAzimuthal:     {"lambert-azimuthal", "laea"},
	AzimuthalEquidistant: {"azimuthal-equidistant", "aeqd"},
	Spherical3D:          {"3d", "3d"},
}

// Kinds lists every projection in display order.
func Kinds() []Kind {
	return []Kind{
		Equirectangular, CylindricalEqualArea, Mollweide, Robinson,
		LambertAzimuthal, AzimuthalEquidistant, Spherical3D,
	}
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n[0]
	}
	return "unknown"
}

// Short is the PROJ name of the projection.
func (k Kind) Short() string {
	if n, ok := kindNames[k]; ok {
		return n[1]
	}
	return "unknown"
}

func (k Kind) IsCylindrical() bool {
	switch k {
	case CylindricalEqualArea, Equirectangular, Mollweide, Robinson:
		return true
	}
	return false
}

func (k Kind) IsAzimuthal() bool {
	return k == LambertAzimuthal || k == AzimuthalEquidistant
}

// IsPlanar reports whether k maps onto the normalized plane.
func (k Kind) IsPlanar() bool {
	return k.IsCylindrical() || k.IsAzimuthal()
}

func (k Kind) valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind accepts a long name, a PROJ short name or a few common aliases.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "platecarree", "plate_carree", "equirectangular":
		return Equirectangular, nil
	case "lambert", "lambert-azimuthal-equal-area":
		return LambertAzimuthal, nil
	case "sphere", "globe", "spherical":
		return Spherical3D, nil
	}
	for k, n := range kindNames {
		if s == n[0] || s == n[1] {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}
