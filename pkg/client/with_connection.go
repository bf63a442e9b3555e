package client

import (
	"github.com/pkg/errors"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/common/util"
	"github.com/scicrunch/sckan-nli/internal/stardog"
)

// WithAdmin creates an admin client, runs action with it and releases it afterwards.
// Failing to create the client is reported as *sckanerrors.ErrAdmin.
func WithAdmin(details *ConnectionDetails, action func(*stardog.Admin) error) error {
	admin, err := stardog.NewAdmin(details.StardogConfig())
	if err != nil {
		return errors.WithStack(&sckanerrors.ErrAdmin{Cause: err})
	}
	defer util.CloseResource("stardog admin client", admin)
	return action(admin)
}

// WithConnection opens a connection to the configured database, runs action with it and closes it afterwards.
func WithConnection(details *ConnectionDetails, action func(*stardog.Connection) error) error {
	conn, err := stardog.NewConnection(details.Database, details.StardogConfig())
	if err != nil {
		return errors.WithMessage(err, "failed to open Stardog connection")
	}
	defer util.CloseResource("stardog connection", conn)
	return action(conn)
}
