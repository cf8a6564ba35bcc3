package cli

import (
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"geoproj/internal/graticule"
	"geoproj/internal/proj"
	"geoproj/internal/projfilter"
)

func addPersistentFlags(fs *flag.FlagSet) {
	def := projfilter.DefaultConfig()
	fs.String(flagConfig, "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	fs.String(flagProjection, def.Projection.Short(),
		"Projection, one of [eqc, cea, moll, robin, laea, aeqd, 3d].")
	fs.Float64(flagCenterLat, def.CenterLatitude, "Latitude of the projection centre in degrees.")
	fs.Float64(flagCenterLon, def.CenterLongitude, "Longitude of the projection centre in degrees.")
	fs.Float64(flagRefHeight, def.ReferenceHeight,
		"Sphere radius of the 3d projection for points without height.")
	fs.Float64(flagInterpolation, def.InterpolationDistance,
		"Largest normalized distance between output points; 0 disables refinement.")
	fs.Float64(flagIgnoreDist, def.AzimuthalIgnorePolyDistance,
		"Azimuthal projections drop polygons closer than this many degrees to the opposite point.")
	fs.Float64(flagEps, def.Eps, "Tolerance in degrees around the azimuthal opposite point.")
	fs.String(flagLogFile, "", "Write JSON logs to this file.")
	fs.String(flagLogLevel, "info", "Log level, one of [debug, info, warn, error].")
}

// filterConfig reads the projection settings out of conf.
func filterConfig(conf *viper.Viper) (projfilter.Config, error) {
	k, err := proj.ParseKind(conf.GetString(flagProjection))
	if err != nil {
		return projfilter.Config{}, errors.Wrapf(err, "--%s", flagProjection)
	}
	cfg := projfilter.Config{
		Projection:                  k,
		CenterLatitude:              conf.GetFloat64(flagCenterLat),
		CenterLongitude:             conf.GetFloat64(flagCenterLon),
		ReferenceHeight:             conf.GetFloat64(flagRefHeight),
		InterpolationDistance:       conf.GetFloat64(flagInterpolation),
		AzimuthalIgnorePolyDistance: conf.GetFloat64(flagIgnoreDist),
		Eps:                         conf.GetFloat64(flagEps),
	}
	return cfg, cfg.Validate()
}

func addGraticuleFlags(fs *flag.FlagSet) {
	def := graticule.DefaultConfig()
	fs.Float64("spacing", def.Spacing, "Degrees between graticule lines.")
	fs.Float64("step", def.PointDistance, "Degrees between points along a graticule line.")
	fs.Bool("poles", def.ParallelsForPoles, "Include the parallels at the poles.")
}

func graticuleConfig(conf *viper.Viper) graticule.Config {
	return graticule.Config{
		Spacing:           conf.GetFloat64("spacing"),
		PointDistance:     conf.GetFloat64("step"),
		ParallelsForPoles: conf.GetBool("poles"),
	}
}
