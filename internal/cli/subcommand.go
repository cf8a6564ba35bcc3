package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand pairs a command with the viper instance resolving its flags,
// GEOPROJ_* environment variables and the --config file, in that order of
// precedence.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

const envPrefix = "GEOPROJ"

// Flag names shared by every command.
const (
	flagConfig        = "config"
	flagProjection    = "projection"
	flagCenterLat     = "center_lat"
	flagCenterLon     = "center_lon"
	flagRefHeight     = "reference_height"
	flagInterpolation = "interpolation_distance"
	flagIgnoreDist    = "azimuthal_ignore_poly_distance"
	flagEps           = "eps"
	flagLogFile       = "log_file"
	flagLogLevel      = "log_level"
)
