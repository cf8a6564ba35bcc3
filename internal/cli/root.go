// Package cli wires the geoproj commands: the interactive viewer and the
// batch tools projecting files, generating graticules and converting single
// coordinates.
package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Without a subcommand it runs the
// viewer.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "geoproj [file]",
		Short: "geoproj: map projections for geographic meshes",
		Long: `
geoproj projects points, lines and polygons given in longitude/latitude into
a normalized map plane or onto a sphere. Lines crossing the meridian opposite
the projection centre are cut, polygons are split and routed over the poles,
and long edges are refined along great circles.
`,
		SilenceUsage: true,
	}
	addPersistentFlags(root.PersistentFlags())

	view := newView()
	subcommands := []*SubCommand{
		view, newProject(), newGraticule(), newForward(), newInverse(),
	}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
		_ = sc.Conf.BindPFlags(root.PersistentFlags())
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}

	root.Args = view.Cmd.Args
	root.Flags().AddFlagSet(view.Cmd.Flags())
	root.RunE = view.Cmd.RunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd.Flags().GetString(flagConfig)
		if err != nil || cfg == "" {
			return nil
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				return errors.Wrap(err, "reading config")
			}
		}
		return nil
	}
	return root
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
