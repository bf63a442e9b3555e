package sckannli

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/scicrunch/sckan-nli/internal/common/logging"
	"github.com/scicrunch/sckan-nli/internal/export"
	"github.com/scicrunch/sckan-nli/internal/stardog"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

// Export checks the server and then runs every step of the plan in order, stopping at the first failure.
// The JUnit report and metrics file, if requested, are written whatever the outcome of the run.
func (a *App) Export(ctx context.Context) error {
	if err := a.Params.Plan.Validate(); err != nil {
		return err
	}

	var metrics *export.Metrics
	if a.Params.MetricsPath != "" {
		metrics = export.NewMetrics()
		restore, err := installLogMetrics(metrics)
		if err != nil {
			return err
		}
		defer restore()
	}

	fmt.Fprintf(a.Out, "\nProgram execution started...\n")
	if err := a.Check(ctx); err != nil {
		return err
	}

	details := a.Params.ConnectionDetails
	runner := export.NewRunner(a.Out, a.Params.Plan, details.Database)
	runner.SelectOptions = []stardog.SelectOption{stardog.WithReasoning(false)}

	var report *export.Report
	err := client.WithConnection(details, func(conn *stardog.Connection) error {
		var runErr error
		report, runErr = runner.Run(ctx, conn)
		return runErr
	})
	if report == nil {
		return err
	}

	report.PrintSummary(a.Out)
	if artifactErr := a.writeArtifacts(report, metrics); artifactErr != nil {
		if err == nil {
			return artifactErr
		}
		log.WithError(artifactErr).Warn("Failed to write run artifacts")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "\nAll queries executed and results are saved successfully!\n\n")
	return nil
}

func (a *App) writeArtifacts(report *export.Report, metrics *export.Metrics) error {
	var result *multierror.Error
	if a.Params.JUnitPath != "" {
		if err := export.WriteJUnit(a.Params.JUnitPath, report); err != nil {
			result = multierror.Append(result, err)
		} else {
			log.Debugf("JUnit report written to %s", a.Params.JUnitPath)
		}
	}
	if metrics != nil {
		metrics.Record(report)
		if err := metrics.WriteToTextfile(a.Params.MetricsPath); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "error writing metrics to %s", a.Params.MetricsPath))
		} else {
			log.Debugf("Metrics written to %s", a.Params.MetricsPath)
		}
	}
	return result.ErrorOrNil()
}

// installLogMetrics counts the log messages of the run into metrics.
// The returned func puts the standard logger's previous hooks back.
func installLogMetrics(metrics *export.Metrics) (func(), error) {
	hook, logMessages, err := logging.NewPrometheusHook()
	if err != nil {
		return nil, err
	}
	metrics.Include(logMessages)
	logger := log.StandardLogger()
	previous := make(log.LevelHooks)
	for level, hooks := range logger.Hooks {
		previous[level] = append(previous[level], hooks...)
	}
	logger.AddHook(hook)
	return func() { logger.ReplaceHooks(previous) }, nil
}
