package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
)

// Validate runs the struct tags of c through validator and converts every failed field
// into an *sckanerrors.ErrInvalidArgument, aggregated in a multierror.
func Validate(c interface{}) error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.WithStack(err)
	}
	var result *multierror.Error
	for _, fieldErr := range validationErrors {
		result = multierror.Append(result, &sckanerrors.ErrInvalidArgument{
			Name:    stripPrefix(fieldErr.Namespace()),
			Value:   fieldErr.Value(),
			Message: messageForTag(fieldErr.Tag()),
		})
	}
	return result.ErrorOrNil()
}

func LogValidationErrors(err error) {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		if err != nil {
			log.Errorf("ConfigError: %s", err)
		}
		return
	}
	for _, err := range merr.Errors {
		var invalid *sckanerrors.ErrInvalidArgument
		if errors.As(err, &invalid) && invalid.Message == messageForTag("required") {
			log.Errorf("ConfigError: Field %s is required but was not found", invalid.Name)
		} else {
			log.Errorf("ConfigError: %s", err)
		}
	}
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "a value is required"
	case "url":
		return "must be an absolute URL"
	case "gt":
		return "must be positive"
	default:
		return "failed validation rule " + tag
	}
}

func stripPrefix(namespace string) string {
	index := strings.Index(namespace, ".")
	if index == -1 {
		return namespace
	}
	return namespace[index+1:]
}
