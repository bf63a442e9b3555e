package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/sckannli"
)

func versionCmd(a *sckannli.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, v, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
