package logging

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/weaveworks/promrus"
)

// LogMessagesMetric is the name of the counter promrus keeps on the default registry.
const LogMessagesMetric = "log_messages"

// NewPrometheusHook returns a hook counting log lines by level, together with a gatherer that
// yields only that counter. Every call starts the counter from zero.
func NewPrometheusHook() (logrus.Hook, prometheus.Gatherer, error) {
	hook, err := promrus.NewPrometheusHook()
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return hook, onlyFamily(prometheus.DefaultGatherer, LogMessagesMetric), nil
}

// onlyFamily filters g down to the metric family called name. The default registry also
// carries the Go runtime and process collectors, which do not belong in a per-run file.
func onlyFamily(g prometheus.Gatherer, name string) prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := g.Gather()
		if err != nil {
			return nil, err
		}
		for _, family := range families {
			if family.GetName() == name {
				return []*dto.MetricFamily{family}, nil
			}
		}
		return nil, nil
	})
}
