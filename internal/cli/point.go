package cli

import (
	"fmt"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"geoproj/internal/proj"
	"geoproj/internal/sphere"
)

func parsePair(args []string) (float64, float64, error) {
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", args[0])
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", args[1])
	}
	return a, b, nil
}

func newForward() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "forward LON LAT",
		Short: "Print the normalized projected position of a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, lat, err := parsePair(args)
			if err != nil {
				return err
			}
			cfg, err := filterConfig(sc.Conf)
			if err != nil {
				return err
			}
			if cfg.Projection == proj.Spherical3D {
				v := sphere.LonLat{Lon: lon, Lat: lat}.Vector().Mul(cfg.ReferenceHeight)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f %.6f\n", v.X, v.Y, v.Z)
				return err
			}
			p, err := proj.Forward(cfg.Projection, cfg.CenterLatitude, cfg.CenterLongitude, lon, lat)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", p.X, p.Y)
			return err
		},
	}
	return sc
}

func newInverse() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "inverse X Y",
		Short: "Print the coordinate of a normalized projected position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePair(args)
			if err != nil {
				return err
			}
			cfg, err := filterConfig(sc.Conf)
			if err != nil {
				return err
			}
			lon, lat, err := proj.Inverse(cfg.Projection, cfg.CenterLatitude, cfg.CenterLongitude, r2.Point{X: x, Y: y})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", lon, lat)
			return err
		},
	}
	return sc
}
