// Package sckannli exports the SCKAN natural-language-interface data sets from Stardog.
package sckannli

import (
	"io"
	"os"

	"github.com/scicrunch/sckan-nli/internal/export"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	ConnectionDetails *client.ConnectionDetails
	// Resolved against the base directory already.
	Plan *export.Plan
	// Where to write a JUnit report of the run. Empty disables the report.
	JUnitPath string
	// Where to write the run metrics in Prometheus text format. Empty disables them.
	MetricsPath string
}

// New instantiates an App with default parameters, including standard output.
func New() *App {
	return &App{
		Params: &Params{
			ConnectionDetails: &client.ConnectionDetails{},
			Plan:              export.DefaultPlan(),
		},
		Out: os.Stdout,
	}
}
