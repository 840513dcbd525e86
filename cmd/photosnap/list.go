package photosnap

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/paths"
	"github.com/arthur-debert/photosnap/pkg/planner"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list PARENT",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			layout, err := planner.Layout(cfg.DateFormat)
			if err != nil {
				return err
			}
			parent, err := paths.NormalizePath(args[0])
			if err != nil {
				return err
			}

			folders, err := planner.ListSnapshots(filesystem.NewOS(), parent, layout)
			if err != nil {
				return err
			}
			return renderer.RenderSnapshots(folders)
		},
	}
}
