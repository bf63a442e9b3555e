// Package sckanerrors contains the generic errors returned while exporting from Stardog.
// The CLI looks for the error types defined in this file to pick an exit code and
// to print a diagnostic hint next to the error message.
//
// If multiple errors occur in some function (e.g., if several plan steps are invalid), that
// function should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package sckanerrors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	ExitCodeOK              = 0
	ExitCodeFailure         = 1
	ExitCodeInvalidArgument = 2
)

// ErrInvalidArgument is a generic error to be returned on invalid argument or configuration.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "username"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	} else {
		return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
	}
}

// ErrMissingCredentials is returned when no Stardog username or password could be found.
type ErrMissingCredentials struct {
	UsernameVar string
	PasswordVar string
}

func (err *ErrMissingCredentials) Error() string {
	return fmt.Sprintf(
		"Stardog credentials not set. Please set %s and %s environment variables.",
		err.UsernameVar, err.PasswordVar,
	)
}

// ErrUnreachable is returned when the connectivity pre-check against the alive endpoint fails.
// StatusCode is zero if no response was received at all.
type ErrUnreachable struct {
	Url        string
	StatusCode int
	Cause      error
}

func (err *ErrUnreachable) Error() string {
	if err.Cause != nil {
		return fmt.Sprintf("connectivity check failed: unable to reach %s: %s", err.Url, err.Cause)
	}
	return fmt.Sprintf("connectivity check failed: %s returned status %d", err.Url, err.StatusCode)
}

func (err *ErrUnreachable) Unwrap() error {
	return err.Cause
}

func (err *ErrUnreachable) Hint() string {
	return "Unable to reach the Stardog endpoint. Possible causes:\n" +
		"  - Network connectivity or VPN issues\n" +
		"  - Hostname or port is blocked by firewall\n" +
		"  - Stardog service is down\n" +
		fmt.Sprintf("Try: curl -v %s", err.Url)
}

// ErrUnhealthy is returned when the server answers but reports it cannot accept traffic.
type ErrUnhealthy struct {
	Endpoint string
}

func (err *ErrUnhealthy) Error() string {
	return fmt.Sprintf("Stardog server at %s is NOT running", err.Endpoint)
}

func (err *ErrUnhealthy) Hint() string {
	return "Please start the server and try again."
}

// ErrAdmin is returned when the admin client could not be created or used.
type ErrAdmin struct {
	Cause error
}

func (err *ErrAdmin) Error() string {
	return fmt.Sprintf("failed to use Stardog admin client: %s", err.Cause)
}

func (err *ErrAdmin) Unwrap() error {
	return err.Cause
}

func (err *ErrAdmin) Hint() string {
	return "If this is a network timeout, verify the endpoint and network reachability."
}

// ErrQueryFailed is returned when a plan step could not be completed.
// Step is the one-based position of the step in the plan.
type ErrQueryFailed struct {
	Step  int
	Query string
	Cause error
}

func (err *ErrQueryFailed) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %s", err.Step, err.Query, err.Cause)
}

func (err *ErrQueryFailed) Unwrap() error {
	return err.Cause
}

func (err *ErrQueryFailed) Hint() string {
	return "Check network connectivity, credentials, and that the database name is correct."
}

// ExitCodeFromError maps error types to process exit codes.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	// A multierror is only an invalid argument if all of its errors are.
	// Checked first since errors.As matches any single error inside it.
	{
		var e *multierror.Error
		if errors.As(err, &e) && len(e.Errors) > 0 {
			for _, inner := range e.Errors {
				if ExitCodeFromError(inner) != ExitCodeInvalidArgument {
					return ExitCodeFailure
				}
			}
			return ExitCodeInvalidArgument
		}
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return ExitCodeInvalidArgument
		}
	}
	{
		var e *ErrMissingCredentials
		if errors.As(err, &e) {
			return ExitCodeInvalidArgument
		}
	}
	return ExitCodeFailure
}

// HintFromError returns the diagnostic hint of the first error in the chain that has one,
// or the empty string.
func HintFromError(err error) string {
	type hinter interface {
		Hint() string
	}
	var h hinter
	if errors.As(err, &h) {
		return h.Hint()
	}
	return ""
}
