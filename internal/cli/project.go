package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoproj/internal/geom"
	"geoproj/internal/graticule"
	"geoproj/internal/mesh"
	"geoproj/internal/proj"
	"geoproj/internal/projfilter"
)

func newProject() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "project",
		Short: "Project a geographic file and write the result as GeoJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := filterConfig(sc.Conf)
			if err != nil {
				return err
			}
			log, done, err := newLogger(sc.Conf, false)
			if err != nil {
				return err
			}
			defer done()

			var layers []*mesh.Mesh
			if in := sc.Conf.GetString("in"); in != "" {
				d, err := geom.Load(in)
				if err != nil {
					return err
				}
				layers = d.Layers()
				if sc.Conf.GetBool("track") && d.Points != nil {
					track, err := pointTrack(d.Points)
					if err != nil {
						return err
					}
					layers = append(layers, track)
				}
			}
			if path := sc.Conf.GetString("swaths"); path != "" {
				m, err := geom.LoadSwathCSV(path)
				if err != nil {
					return errors.Wrap(err, "swaths")
				}
				layers = append(layers, m)
			}
			if path := sc.Conf.GetString("grid"); path != "" {
				m, err := geom.LoadGridCSV(path, cfg.ReferenceHeight, sc.Conf.GetFloat64("height_factor"))
				if err != nil {
					return errors.Wrap(err, "grid")
				}
				layers = append(layers, m)
			}
			if sc.Conf.GetBool("graticule") {
				g, err := graticule.Generate(graticuleConfig(sc.Conf))
				if err != nil {
					return err
				}
				layers = append([]*mesh.Mesh{g}, layers...)
			}
			return writeProjected(cmd, sc.Conf.GetString("out"), cfg, layers, log)
		},
	}
	fs := sc.Cmd.Flags()
	fs.String("in", "", "Input file (.geojson, .json, .csv, .kml, .wkt).")
	fs.String("out", "-", "Output GeoJSON file, - for stdout.")
	fs.Bool("graticule", false, "Add a projected graticule to the output.")
	fs.Bool("track", false, "Also join the input points, in file order, into a track of line segments.")
	fs.String("swaths", "", "CSV of sensor footprints: lon0..lon3, lat0..lat3, value.")
	fs.String("grid", "", "CSV of regular grid centres: lon, lat, value.")
	fs.Float64("height_factor", 0, "Raise grid corners above the reference height by this much at the largest value.")
	addGraticuleFlags(fs)
	sc.Cmd.MarkFlagsOneRequired("in", "swaths", "grid")
	return sc
}

// pointTrack joins the points of a vertex layer into a segment path.
func pointTrack(pts *mesh.Mesh) (*mesh.Mesh, error) {
	lons := make([]float64, 0, len(pts.Verts))
	lats := make([]float64, 0, len(pts.Verts))
	for _, c := range pts.Verts {
		for _, id := range c {
			lons = append(lons, pts.Points[id].X)
			lats = append(lats, pts.Points[id].Y)
		}
	}
	return mesh.FromPath(lons, lats)
}

func newGraticule() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "graticule",
		Short: "Write a graticule as GeoJSON, projected unless --raw",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graticule.Generate(graticuleConfig(sc.Conf))
			if err != nil {
				return err
			}
			if sc.Conf.GetBool("raw") {
				return writeOut(cmd, sc.Conf.GetString("out"), func(w io.Writer) error {
					return geom.WriteGeoJSON(w, []*mesh.Mesh{g}, false)
				})
			}
			cfg, err := filterConfig(sc.Conf)
			if err != nil {
				return err
			}
			log, done, err := newLogger(sc.Conf, false)
			if err != nil {
				return err
			}
			defer done()
			return writeProjected(cmd, sc.Conf.GetString("out"), cfg, []*mesh.Mesh{g}, log)
		},
	}
	fs := sc.Cmd.Flags()
	fs.String("out", "-", "Output GeoJSON file, - for stdout.")
	fs.Bool("raw", false, "Write longitude/latitude without projecting.")
	addGraticuleFlags(fs)
	return sc
}

func writeProjected(cmd *cobra.Command, out string, cfg projfilter.Config, layers []*mesh.Mesh, log *zap.Logger) error {
	f, err := projfilter.New(cfg, projfilter.WithLogger(log))
	if err != nil {
		return err
	}
	projected := make([]*mesh.Mesh, 0, len(layers))
	for _, in := range layers {
		m, err := f.Apply(in)
		if err != nil {
			return err
		}
		projected = append(projected, m)
	}
	log.Info("projected",
		zap.Stringer("projection", cfg.Projection),
		zap.Int("layers", len(projected)),
		zap.String("out", out))
	return writeOut(cmd, out, func(w io.Writer) error {
		return geom.WriteGeoJSON(w, projected, cfg.Projection == proj.Spherical3D)
	})
}

// writeOut runs write against the named file, or the command's output for
// "-".
func writeOut(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
