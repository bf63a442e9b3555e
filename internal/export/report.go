package export

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	// The step was not attempted because an earlier step failed or the run was cancelled.
	StepSkipped StepStatus = "skipped"
)

type StepReport struct {
	// One-based position in the plan.
	Index    int
	Step     Step
	Status   StepStatus
	Rows     int
	Duration time.Duration
	Err      error
}

// Report is the outcome of one export run.
type Report struct {
	RunId    string
	Database string
	Started  time.Time
	Duration time.Duration
	Steps    []*StepReport
}

func (r *Report) Succeeded() bool {
	for _, step := range r.Steps {
		if step.Status != StepSucceeded {
			return false
		}
	}
	return true
}

func (r *Report) Counts() (succeeded int, failed int, skipped int) {
	for _, step := range r.Steps {
		switch step.Status {
		case StepSucceeded:
			succeeded++
		case StepFailed:
			failed++
		case StepSkipped:
			skipped++
		}
	}
	return
}

func (r *Report) TotalRows() int {
	total := 0
	for _, step := range r.Steps {
		total += step.Rows
	}
	return total
}

// PrintSummary writes the per-step outcome table followed by totals.
func (r *Report) PrintSummary(out io.Writer) {
	succeeded, failed, skipped := r.Counts()

	fmt.Fprintf(out, "\n======= SUMMARY =======\n")
	w := tabwriter.NewWriter(out, 1, 1, 2, ' ', 0)
	fmt.Fprintf(w, "Step\tStatus\tRows\tDuration\tOutput\n")
	for _, step := range r.Steps {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", step.Index, step.Status, step.Rows, step.Duration.Round(time.Millisecond), step.Step.Output)
	}
	w.Flush()
	fmt.Fprintf(out, "Ran %d of %d queries in %s\n", succeeded+failed, len(r.Steps), r.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Succeeded: %d\n", succeeded)
	fmt.Fprintf(out, "Failed: %d\n", failed)
	fmt.Fprintf(out, "Skipped: %d\n", skipped)
}
