package client

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/scicrunch/sckan-nli/internal/common/config"
	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/stardog"
)

const (
	DefaultEndpoint = "https://stardog.scicrunch.io:5821"
	DefaultDatabase = "SCKAN-NOV-2025"
	DefaultTimeout  = 10 * time.Second

	UsernameEnvVar = "SCKAN_USERNAME"
	PasswordEnvVar = "SCKAN_PASSWORD"
	TimeoutEnvVar  = "STARDOG_TIMEOUT"
)

// ConnectionDetails says where the Stardog server is and how to log in to it.
type ConnectionDetails struct {
	Endpoint string `validate:"required,url"`
	Database string `validate:"required"`
	Username string
	Password string
	// Timeout of the connectivity pre-check.
	Timeout time.Duration `validate:"gt=0"`
}

// Validate reports missing credentials together with every invalid field.
func (c *ConnectionDetails) Validate() error {
	var result *multierror.Error
	if c.Username == "" || c.Password == "" {
		result = multierror.Append(result, &sckanerrors.ErrMissingCredentials{
			UsernameVar: UsernameEnvVar,
			PasswordVar: PasswordEnvVar,
		})
	}
	if err := config.Validate(c); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (c *ConnectionDetails) StardogConfig() stardog.Config {
	return stardog.Config{
		Endpoint: c.Endpoint,
		Username: c.Username,
		Password: c.Password,
	}
}
