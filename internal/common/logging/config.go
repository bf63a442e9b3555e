package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
)

const (
	FormatText        = "text"
	FormatJson        = "json"
	FormatCommandLine = "cli"
)

var validLogFormats = map[string]bool{
	FormatText:        true,
	FormatJson:        true,
	FormatCommandLine: true,
}

// ConfigureCommandLineLogging sets up the standard logrus logger for interactive use:
// message-only output on stdout at info level.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&CommandLineFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

// Configure applies a level and format chosen on the command line to the standard logger.
func Configure(level string, format string) error {
	return configureLogger(log.StandardLogger(), os.Stdout, level, format)
}

func configureLogger(logger *log.Logger, out io.Writer, level string, format string) error {
	parsedLevel, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	if err := validateLogFormat(format); err != nil {
		return err
	}

	switch format {
	case FormatJson:
		logger.SetFormatter(&log.JSONFormatter{})
	case FormatText:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&CommandLineFormatter{})
	}
	logger.SetOutput(out)
	logger.SetLevel(parsedLevel)
	return nil
}

func validateLogFormat(f string) error {
	if _, ok := validLogFormats[f]; !ok {
		return errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "log-format",
			Value:   f,
			Message: fmt.Sprintf("valid formats are %s, %s and %s", FormatCommandLine, FormatText, FormatJson),
		})
	}
	return nil
}

func parseLogLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "log-level",
			Value:   level,
			Message: "valid levels are debug, info, warn and error",
		})
	}
}
