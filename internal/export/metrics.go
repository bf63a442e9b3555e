package export

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const MetricsNamespace = "sckan_nli"

// Metrics describes one export run in Prometheus form. It is meant to be written to a
// textfile for node_exporter's textfile collector after the run, not served.
type Metrics struct {
	registry *prometheus.Registry
	included prometheus.Gatherers

	lastRunTimestamp prometheus.Gauge
	runDuration      prometheus.Gauge
	runSuccess       prometheus.Gauge
	stepsByStatus    *prometheus.GaugeVec
	stepRows         *prometheus.GaugeVec
	stepDuration     *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_last_run_timestamp_seconds",
			Help:      "Unix time the last export run started",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_duration_seconds",
			Help:      "Wall time of the last export run",
		}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_success",
			Help:      "1 if every query of the last export run succeeded, 0 otherwise",
		}),
		stepsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_steps",
			Help:      "Number of steps of the last export run by status",
		}, []string{"status"}),
		stepRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_step_rows",
			Help:      "Number of result rows written by a step",
		}, []string{"query", "output"}),
		stepDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "export_step_duration_seconds",
			Help:      "Time taken to run a step's query and write its results",
		}, []string{"query", "output"}),
	}
	m.registry.MustRegister(
		m.lastRunTimestamp,
		m.runDuration,
		m.runSuccess,
		m.stepsByStatus,
		m.stepRows,
		m.stepDuration,
	)
	return m
}

// Include adds the metrics of g, e.g. the log line counter, to the written file.
func (m *Metrics) Include(g prometheus.Gatherer) {
	m.included = append(m.included, g)
}

func (m *Metrics) Record(report *Report) {
	m.lastRunTimestamp.Set(float64(report.Started.Unix()))
	m.runDuration.Set(report.Duration.Seconds())
	if report.Succeeded() {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}

	succeeded, failed, skipped := report.Counts()
	m.stepsByStatus.WithLabelValues(string(StepSucceeded)).Set(float64(succeeded))
	m.stepsByStatus.WithLabelValues(string(StepFailed)).Set(float64(failed))
	m.stepsByStatus.WithLabelValues(string(StepSkipped)).Set(float64(skipped))

	for _, step := range report.Steps {
		if step.Status != StepSucceeded {
			continue
		}
		m.stepRows.WithLabelValues(step.Step.Query, step.Step.Output).Set(float64(step.Rows))
		m.stepDuration.WithLabelValues(step.Step.Query, step.Step.Output).Set(step.Duration.Seconds())
	}
}

// WriteToTextfile writes the run metrics and those of the included gatherers in the Prometheus text format.
func (m *Metrics) WriteToTextfile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", filePath)
	}
	gatherers := append(prometheus.Gatherers{m.registry}, m.included...)
	return prometheus.WriteToTextfile(filePath, gatherers)
}
