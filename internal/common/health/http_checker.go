package health

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
)

// HttpChecker issues a GET against Url and expects 200 OK within Timeout.
type HttpChecker struct {
	Url     string
	Timeout time.Duration
	Client  *http.Client
}

func NewHttpChecker(url string, timeout time.Duration) *HttpChecker {
	return &HttpChecker{
		Url:     url,
		Timeout: timeout,
		Client:  &http.Client{},
	}
}

func (c *HttpChecker) Name() string {
	return "connectivity"
}

// Check returns *sckanerrors.ErrUnreachable if the endpoint cannot be reached or does not answer 200.
func (c *HttpChecker) Check(ctx context.Context) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Url, nil)
	if err != nil {
		return errors.WithStack(&sckanerrors.ErrInvalidArgument{
			Name:    "endpoint",
			Value:   c.Url,
			Message: err.Error(),
		})
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.WithStack(&sckanerrors.ErrUnreachable{Url: c.Url, Cause: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.WithStack(&sckanerrors.ErrUnreachable{Url: c.Url, StatusCode: resp.StatusCode})
	}
	return nil
}
