package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/stardog"
)

// Executor runs a query document against the database. *stardog.Connection implements it.
type Executor interface {
	Select(ctx context.Context, query string, opts ...stardog.SelectOption) (*stardog.SelectResults, error)
}

type Runner struct {
	// Out receives the progress messages.
	Out  io.Writer
	Plan *Plan
	// Options applied to every query. Reasoning stays off unless an option turns it on.
	SelectOptions []stardog.SelectOption
	// Used to label the report.
	Database string
	// Returns the current time; replaced in tests.
	Now func() time.Time
}

func NewRunner(out io.Writer, plan *Plan, database string) *Runner {
	return &Runner{
		Out:      out,
		Plan:     plan,
		Database: database,
		Now:      time.Now,
	}
}

// Run executes the plan's steps strictly in order, writing each result set before the next query starts.
// The first failing step ends the run: later steps are reported as skipped and never attempted.
// The returned report is never nil, also when an error is returned.
func (r *Runner) Run(ctx context.Context, executor Executor) (*Report, error) {
	report := &Report{
		RunId:    uuid.NewString(),
		Database: r.Database,
		Started:  r.Now(),
		Steps:    make([]*StepReport, len(r.Plan.Steps)),
	}
	for i, step := range r.Plan.Steps {
		report.Steps[i] = &StepReport{Index: i + 1, Step: step, Status: StepSkipped}
	}
	logger := log.WithField("runId", report.RunId)

	var runErr error
	for _, stepReport := range report.Steps {
		if err := ctx.Err(); err != nil {
			runErr = errors.WithStack(err)
			break
		}
		start := r.Now()
		rows, err := r.runStep(ctx, executor, stepReport)
		stepReport.Duration = r.Now().Sub(start)
		stepReport.Rows = rows
		if err != nil {
			stepReport.Status = StepFailed
			stepReport.Err = err
			runErr = errors.WithStack(&sckanerrors.ErrQueryFailed{
				Step:  stepReport.Index,
				Query: stepReport.Step.Query,
				Cause: err,
			})
			break
		}
		stepReport.Status = StepSucceeded
		logger.WithFields(log.Fields{
			"step":     stepReport.Index,
			"rows":     rows,
			"duration": stepReport.Duration,
		}).Debug("step finished")
	}
	report.Duration = r.Now().Sub(report.Started)
	return report, runErr
}

func (r *Runner) runStep(ctx context.Context, executor Executor, stepReport *StepReport) (int, error) {
	step := stepReport.Step
	fmt.Fprintf(r.Out, "\nStep %d: Executing query from: %s\n", stepReport.Index, step.Query)

	query, err := os.ReadFile(step.Query)
	if err != nil {
		return 0, errors.Wrapf(err, "error reading query file %s", step.Query)
	}
	results, err := executor.Select(ctx, string(query), r.SelectOptions...)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(r.Out, "        Saving query results...\n")
	if err := WriteResults(step.Output, results); err != nil {
		return results.Len(), err
	}
	fmt.Fprintf(r.Out, "        Query results saved to: %s\n", step.Output)
	fmt.Fprintf(r.Out, "Step %d: Done!\n", stepReport.Index)
	return results.Len(), nil
}
