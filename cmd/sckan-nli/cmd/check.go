package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/common/app"
	"github.com/scicrunch/sckan-nli/internal/sckannli"
)

func checkCmd(a *sckannli.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check credentials, connectivity and server health without running any query",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, v, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.CreateContextWithShutdown(context.Background())
			defer cancel()
			return a.Check(ctx)
		},
	}
	return cmd
}
