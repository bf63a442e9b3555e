package sckannli

import (
	"fmt"
	"text/tabwriter"
)

// ListQueries prints the steps of the plan without contacting the server.
func (a *App) ListQueries() error {
	if err := a.Params.Plan.Validate(); err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.Out, 1, 1, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "STEP\tQUERY\tOUTPUT\n")
	for i, step := range a.Params.Plan.Steps {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, step.Query, step.Output)
	}
	return nil
}
