package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/export"
	"github.com/scicrunch/sckan-nli/internal/sckannli"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

func addPlanFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("plan", "", "YAML or JSON file listing the queries to run and where to save their results (default is the built-in list)")
	flags.String("base-dir", ".", "directory relative query and output paths are resolved against")
	flags.String("junit", "", "write a JUnit report of the run to this file")
	flags.String("metrics", "", "write run metrics in Prometheus text format to this file")

	_ = v.BindPFlag("plan", flags.Lookup("plan"))
	_ = v.BindPFlag("baseDir", flags.Lookup("base-dir"))
	_ = v.BindPFlag("junit", flags.Lookup("junit"))
	_ = v.BindPFlag("metrics", flags.Lookup("metrics"))
}

func initParams(cmd *cobra.Command, v *viper.Viper, app *sckannli.App) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := client.LoadCommandlineArgs(v, cfgFile); err != nil {
		return err
	}
	app.Params.ConnectionDetails = client.ExtractCommandlineConnectionDetails(v)

	plan, err := loadPlan(v)
	if err != nil {
		return err
	}
	app.Params.Plan = plan.Resolve(v.GetString("baseDir"))
	app.Params.JUnitPath = v.GetString("junit")
	app.Params.MetricsPath = v.GetString("metrics")
	return nil
}

// loadPlan picks the plan from, in order, the --plan file, the queries listed in the config file
// and the built-in list.
func loadPlan(v *viper.Viper) (*export.Plan, error) {
	if planFile := v.GetString("plan"); planFile != "" {
		return export.LoadPlan(planFile)
	}
	steps, err := client.ExtractCommandlineQueries(v)
	if err != nil {
		return nil, err
	}
	if steps != nil {
		return &export.Plan{Steps: steps}, nil
	}
	return export.DefaultPlan(), nil
}
