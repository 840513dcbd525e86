package photosnap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/photosnap/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersion+"\n", version.Version, version.Commit, version.Date)
		},
	}
}
