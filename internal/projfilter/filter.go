// Package projfilter projects geographic meshes into a normalized map plane
// or onto a sphere. Planar output is cut along the meridian opposite the
// centre (cylindrical projections) or filtered around the point opposite
// the centre (azimuthal projections), and long edges are refined with
// great-circle points so they stay curved after projection.
package projfilter

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"geoproj/internal/mesh"
	"geoproj/internal/proj"
)

// ErrCoordinate marks an input point that is not a valid lon/lat position.
var ErrCoordinate = errors.New("geographic coordinate out of range")

// Filter applies one projection configuration to meshes. It holds no
// per-call state and may be shared between goroutines.
type Filter struct {
	cfg  Config
	proj proj.Projection
	log  *zap.Logger
}

type Option func(*Filter)

// WithLogger routes the filter's debug output to l.
func WithLogger(l *zap.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.log = l
		}
	}
}

func New(cfg Config, opts ...Option) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid projection config")
	}
	f := &Filter{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	if cfg.Projection.IsPlanar() {
		p, err := proj.New(cfg.Projection, cfg.CenterLatitude, cfg.CenterLongitude)
		if err != nil {
			return nil, errors.Wrapf(err, "creating %s projection", cfg.Projection)
		}
		f.proj = p
	}
	return f, nil
}

func (f *Filter) Config() Config { return f.cfg }

func (f *Filter) XYRatio() float64 { return f.cfg.XYRatio() }

// stats counts what a single Apply did besides plain projection.
type stats struct {
	inserted    int // refinement and boundary points
	splits      int // edges cut at the boundary meridian
	poleRoutes  int // polygon sides routed over a pole
	unmappable  int // input points the projection could not map
	droppedPoly int // azimuthal polygons too close to the opposite point
	degenerate  int // cells left with too few points
}

// Apply projects in and returns a new mesh; in is not modified.
func (f *Filter) Apply(in *mesh.Mesh) (*mesh.Mesh, error) {
	if in == nil {
		return nil, errors.New("nil input mesh")
	}
	if err := in.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid input mesh")
	}
	for i, p := range in.Points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || !(p.Y >= -90 && p.Y <= 90) {
			return nil, errors.Wrapf(ErrCoordinate, "point %d (%v, %v)", i, p.X, p.Y)
		}
	}

	var (
		st  stats
		out *mesh.Mesh
	)
	switch k := f.cfg.Projection; {
	case k.IsCylindrical():
		out = f.cylindrical(in, &st)
	case k.IsAzimuthal():
		out = f.azimuthal(in, &st)
	default:
		out = f.sphere3D(in, &st)
	}

	f.log.Debug("projected mesh",
		zap.Stringer("projection", f.cfg.Projection),
		zap.Stringer("cells", in.Kind()),
		zap.Int("points_in", len(in.Points)),
		zap.Int("points_out", len(out.Points)),
		zap.Int("cells_in", in.NumCells()),
		zap.Int("cells_out", out.NumCells()),
		zap.Int("inserted", st.inserted),
		zap.Int("splits", st.splits),
		zap.Int("pole_routes", st.poleRoutes),
		zap.Int("unmappable", st.unmappable),
		zap.Int("dropped_polygons", st.droppedPoly),
		zap.Int("degenerate", st.degenerate),
	)
	return out, nil
}

// builder grows the output mesh. The first len(in.Points) output points
// are the projected input points, so input ids stay valid in the output.
type builder struct {
	in  *mesh.Mesh
	out *mesh.Mesh
}

func newBuilder(in *mesh.Mesh, points []r3.Vector) *builder {
	return &builder{
		in: in,
		out: &mesh.Mesh{
			Points:    points,
			PointData: in.PointData.Clone(),
			CellData:  in.CellData.EmptyLike(),
		},
	}
}

// point appends v with the point attributes of input point src.
func (b *builder) point(v r3.Vector, src int) int {
	id := b.out.InsertPoint(v)
	b.out.PointData.AppendFrom(b.in.PointData, src)
	return id
}

// cell appends a cell with the cell attributes of input cell src.
func (b *builder) cell(kind mesh.CellKind, ids []int, src int) {
	b.out.InsertCell(kind, ids)
	b.out.CellData.AppendFrom(b.in.CellData, src)
}
