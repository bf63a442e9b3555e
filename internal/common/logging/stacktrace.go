package logging

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const Stacktrace = "stacktrace"

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStacktrace adds err to the entry and, if an error in its chain was created or wrapped by pkg/errors,
// the outermost stack trace found as a formatted string.
func WithStacktrace(entry *logrus.Entry, err error) *logrus.Entry {
	entry = entry.WithError(err)
	var tracer stackTracer
	if errors.As(err, &tracer) {
		entry = entry.WithField(Stacktrace, fmt.Sprintf("%+v", tracer.StackTrace()))
	}
	return entry
}
