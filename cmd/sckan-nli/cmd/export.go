package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/common/app"
	"github.com/scicrunch/sckan-nli/internal/sckannli"
)

func exportCmd(a *sckannli.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run every query and save the results as JSON",
		Long: `Checks that the Stardog server is reachable and healthy, then runs the queries one after
the other and saves each result set to its output file. The first failing query ends the run.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, v, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(a)
		},
	}
	return cmd
}

// runExport runs the export with a context that is cancelled on SIGINT/SIGTERM.
func runExport(a *sckannli.App) error {
	ctx, cancel := app.CreateContextWithShutdown(context.Background())
	defer cancel()
	return a.Export(ctx)
}
