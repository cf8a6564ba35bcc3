// Package sphere holds the great-circle primitives used when projecting
// geographic meshes: arc distances, evenly spaced intermediate points and
// the latitude where a great circle meets a meridian.
package sphere

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Normals shorter than this mark identical or antipodal end points.
const degenerateNorm = 1e-12

// LonLat is a geographic position in degrees.
type LonLat struct {
	Lon, Lat float64
}

// Vector returns the unit direction of ll.
func (ll LonLat) Vector() r3.Vector {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(ll.Lat, ll.Lon)).Vector
}

// FromVector returns the position of the direction v.
func FromVector(v r3.Vector) LonLat {
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return LonLat{Lon: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}
}

// WrapLon maps lon into [-180, 180).
func WrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// ArcDistanceXYZ is the angle between p and q in degrees, 0 when either has
// zero length.
func ArcDistanceXYZ(p, q r3.Vector) float64 {
	np, nq := p.Norm(), q.Norm()
	if np == 0 || nq == 0 {
		return 0
	}
	c := p.Dot(q) / (np * nq)
	return math.Acos(math.Max(-1, math.Min(1, c))) * 180 / math.Pi
}

// ArcDistance is the great-circle distance between p and q in degrees.
func ArcDistance(p, q LonLat) float64 {
	return ArcDistanceXYZ(p.Vector(), q.Vector())
}

// IntermediatePoints returns n points strictly between p and q, evenly
// spaced along the shorter great-circle arc. It returns nil when p and q
// are identical or antipodal.
func IntermediatePoints(p, q LonLat, n int) []LonLat {
	if n <= 0 {
		return nil
	}
	pv, qv := p.Vector(), q.Vector()
	f, ok := newFrame(pv, qv)
	if !ok {
		return nil
	}
	start, step := f.span(pv, qv, n)
	out := make([]LonLat, n)
	for i := range out {
		out[i] = FromVector(f.at(start + float64(i+1)*step))
	}
	return out
}

// IntermediatePointsXYZ is IntermediatePoints for Cartesian points; the
// radius is interpolated linearly between |p| and |q|.
func IntermediatePointsXYZ(p, q r3.Vector, n int) []r3.Vector {
	if n <= 0 {
		return nil
	}
	rp, rq := p.Norm(), q.Norm()
	if rp == 0 || rq == 0 {
		return nil
	}
	pu, qu := p.Mul(1/rp), q.Mul(1/rq)
	f, ok := newFrame(pu, qu)
	if !ok {
		return nil
	}
	start, step := f.span(pu, qu, n)
	out := make([]r3.Vector, n)
	for i := range out {
		t := float64(i+1) / float64(n+1)
		out[i] = f.at(start + float64(i+1)*step).Mul(rp + (rq-rp)*t)
	}
	return out
}

// CuttingPoint returns the latitude where the great circle through p and q
// crosses the meridian lon. Identical or antipodal end points give p.Lat.
// A great circle that is itself a meridian meets lon at a pole; the pole on
// the side of the segment is returned.
func CuttingPoint(p, q LonLat, lon float64) float64 {
	f, ok := newFrame(p.Vector(), q.Vector())
	if !ok {
		return p.Lat
	}
	if math.Abs(f.stn) < degenerateNorm {
		if p.Lat+q.Lat < 0 {
			return -90
		}
		return 90
	}
	s, c := math.Sincos(lon * math.Pi / 180)
	return math.Atan(-f.ctn*(c*f.cpn+s*f.spn)/f.stn) * 180 / math.Pi
}

// frame is the orthonormal basis of a great-circle plane, described by the
// sine and cosine of the normal's latitude (stn, ctn) and longitude
// (spn, cpn).
type frame struct {
	stn, ctn float64
	spn, cpn float64
}

func newFrame(p, q r3.Vector) (frame, bool) {
	n := p.Cross(q)
	if n.Norm() < degenerateNorm {
		return frame{}, false
	}
	n = n.Normalize()
	f := frame{stn: n.Z, ctn: math.Sqrt(math.Max(0, 1-n.Z*n.Z))}
	if f.ctn == 0 {
		f.cpn, f.spn = 1, 0
	} else {
		f.cpn, f.spn = n.X/f.ctn, n.Y/f.ctn
	}
	return f, true
}

// phase is the angle of v within the plane.
func (f frame) phase(v r3.Vector) float64 {
	return math.Atan2(
		-v.X*f.stn*f.cpn-v.Y*f.stn*f.spn+v.Z*f.ctn,
		-v.X*f.spn+v.Y*f.cpn,
	)
}

// at is the unit vector at phase alpha.
func (f frame) at(alpha float64) r3.Vector {
	s, c := math.Sincos(alpha)
	return r3.Vector{
		X: -c*f.spn - s*f.stn*f.cpn,
		Y: c*f.cpn - s*f.stn*f.spn,
		Z: s * f.ctn,
	}
}

// span returns the phase of p and the step that places n points between p
// and q along the shorter arc.
func (f frame) span(p, q r3.Vector, n int) (start, step float64) {
	start = f.phase(p)
	d := f.phase(q) - start
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d < -math.Pi:
		d += 2 * math.Pi
	}
	return start, d / float64(n+1)
}
