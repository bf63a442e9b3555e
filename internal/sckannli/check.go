package sckannli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/scicrunch/sckan-nli/internal/common/health"
	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/stardog"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

// Check makes sure the export can start: credentials are set, the endpoint answers on its
// alive endpoint within the configured timeout and the server reports it accepts traffic.
func (a *App) Check(ctx context.Context) error {
	if err := a.Params.ConnectionDetails.Validate(); err != nil {
		return err
	}
	return health.NewMultiChecker(a.connectivityChecker(), a.serverStatusChecker()).Check(ctx)
}

func (a *App) connectivityChecker() health.Checker {
	details := a.Params.ConnectionDetails
	aliveUrl := stardog.AliveURL(details.Endpoint)
	checker := health.NewHttpChecker(aliveUrl, details.Timeout)
	return health.CheckerFunc{
		CheckName: checker.Name(),
		Fn: func(ctx context.Context) error {
			fmt.Fprintf(a.Out, "Running connectivity pre-check to Stardog endpoint...\n")
			if err := checker.Check(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Connectivity check: %s reachable (200 OK)\n", aliveUrl)
			return nil
		},
	}
}

func (a *App) serverStatusChecker() health.Checker {
	details := a.Params.ConnectionDetails
	return health.CheckerFunc{
		CheckName: "server-status",
		Fn: func(ctx context.Context) error {
			fmt.Fprintf(a.Out, "\nStep 0: Checking Stardog server status..\n")
			return client.WithAdmin(details, func(admin *stardog.Admin) error {
				healthy, err := admin.Healthcheck(ctx)
				if err != nil {
					return errors.WithStack(&sckanerrors.ErrAdmin{Cause: err})
				}
				if !healthy {
					fmt.Fprintf(a.Out, "        Server Status: Stardog server is NOT running.\n")
					return errors.WithStack(&sckanerrors.ErrUnhealthy{Endpoint: details.Endpoint})
				}
				fmt.Fprintf(a.Out, "        Server Status: Stardog server is running and able to accept traffic.\n")
				fmt.Fprintf(a.Out, "Step 0: Done!\n")
				return nil
			})
		},
	}
}
