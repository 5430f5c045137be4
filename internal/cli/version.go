package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of seekterm",
		Run: func(cmd *cobra.Command, args []string) {
			a.printf("seekterm %s\n", a.version)
		},
	}
}
