package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/pkg/errors"
)

// WriteJUnit writes the report as a JUnit XML file with one test case per step,
// so that scheduled exports can be tracked by any CI system that understands JUnit.
func WriteJUnit(filePath string, report *Report) error {
	suites := junit.Testsuites{}
	suites.AddSuite(junitSuite(report))

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", filePath)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", filePath)
	}
	if err := suites.WriteXML(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "error writing %s", filePath)
	}
	return errors.Wrapf(f.Close(), "error closing %s", filePath)
}

func junitSuite(report *Report) junit.Testsuite {
	suite := junit.Testsuite{
		Name:      "sckan-nli export " + report.Database,
		Time:      junitDuration(report.Duration),
		Timestamp: report.Started.Format(time.RFC3339),
	}
	suite.AddProperty("runId", report.RunId)
	suite.AddProperty("database", report.Database)

	for _, step := range report.Steps {
		tc := junit.Testcase{
			Name:      fmt.Sprintf("step %02d %s", step.Index, step.Step.Query),
			Classname: "sckan-nli." + report.Database,
			Time:      junitDuration(step.Duration),
		}
		switch step.Status {
		case StepFailed:
			message := "step failed"
			if step.Err != nil {
				message = step.Err.Error()
			}
			tc.Failure = &junit.Result{Message: message, Type: "ExportFailure", Data: fmt.Sprintf("%+v", step.Err)}
		case StepSkipped:
			tc.Skipped = &junit.Result{Message: "not run: an earlier step failed or the run was cancelled"}
		default:
			tc.SystemOut = &junit.Output{Data: fmt.Sprintf("%d rows written to %s", step.Rows, step.Step.Output)}
		}
		suite.AddTestcase(tc)
	}
	return suite
}

func junitDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
