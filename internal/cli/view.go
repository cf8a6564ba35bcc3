package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"geoproj/internal/tui"
)

func newView() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "view [file]",
		Short: "Browse and project geographic files in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := filterConfig(sc.Conf)
			if err != nil {
				return err
			}
			log, done, err := newLogger(sc.Conf, true)
			if err != nil {
				return err
			}
			defer done()

			opts := []tui.Option{tui.WithLogger(log), tui.WithGraticule(graticuleConfig(sc.Conf))}
			if len(args) == 1 {
				opts = append(opts, tui.WithPath(args[0]))
			}
			p := tea.NewProgram(tui.New(cfg, opts...), tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "viewer")
			}
			return nil
		},
	}
	addGraticuleFlags(sc.Cmd.Flags())
	return sc
}
