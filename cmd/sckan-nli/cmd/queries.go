package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/sckannli"
)

func queriesCmd(a *sckannli.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "List the queries an export would run",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, v, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ListQueries()
		},
	}
	return cmd
}
