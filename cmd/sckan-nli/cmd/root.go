package cmd

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/common/config"
	"github.com/scicrunch/sckan-nli/internal/common/logging"
	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/sckannli"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	return rootCmd(sckannli.New(), viper.New())
}

func rootCmd(app *sckannli.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sckan-nli",
		Short: "sckan-nli exports the SCKAN NLI data sets from Stardog.",
		Long: `sckan-nli runs a fixed list of SPARQL queries against a Stardog database and saves
each result set as JSON. Without a sub-command it runs the export.

Credentials are read from the SCKAN_USERNAME and SCKAN_PASSWORD environment variables,
which may also be set in a .env file in the working directory.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
endpoint: https://stardog.scicrunch.io:5821
database: SCKAN-NOV-2025
queries:
  - ./sparql-queries/major-nerves.rq=./sckan-nli-data/major-nerves.json
  - query: ./sparql-queries/sckan-version-info.rq
    output: ./sckan-nli-data/sckan-version.json

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.sckan-nli.yaml is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Configure(v.GetString("log-level"), v.GetString("log-format"))
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, v, app)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(app)
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WithStack(&sckanerrors.ErrInvalidArgument{Name: "flags", Value: cmd.CommandPath(), Message: err.Error()})
	})

	client.AddConnectionCommandlineArgs(cmd, v)
	addPlanFlags(cmd.PersistentFlags(), v)

	flags := cmd.PersistentFlags()
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", logging.FormatCommandLine, "log format: cli, text or json")
	_ = v.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log-format", flags.Lookup("log-format"))

	cmd.AddCommand(
		exportCmd(app, v),
		checkCmd(app, v),
		queriesCmd(app, v),
		versionCmd(app, v),
	)

	return cmd
}

// Execute runs the root command and returns the exit code for the process.
// Errors are logged together with a hint on how to resolve them, if there is one.
func Execute() int {
	err := RootCmd().Execute()
	if err == nil {
		return sckanerrors.ExitCodeOK
	}
	logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Debug("command failed")
	var merr *multierror.Error
	if errors.As(err, &merr) {
		config.LogValidationErrors(merr)
	} else {
		log.Errorf("ERROR: %s", err)
	}
	if hint := sckanerrors.HintFromError(err); hint != "" {
		log.Error(hint)
	}
	return sckanerrors.ExitCodeFromError(err)
}
