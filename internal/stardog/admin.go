package stardog

import (
	"context"
	"io"
	"net/http"
)

// Admin talks to the server-level admin API.
type Admin struct {
	*httpClient
}

func NewAdmin(config Config) (*Admin, error) {
	c, err := newHttpClient(config)
	if err != nil {
		return nil, err
	}
	return &Admin{httpClient: c}, nil
}

// Healthcheck reports whether the server is running and able to accept traffic.
// A 503 answer is reported as (false, nil); transport failures and other statuses are errors.
func (a *Admin) Healthcheck(ctx context.Context) (bool, error) {
	req, err := a.newRequest(ctx, http.MethodGet, healthcheckPath, nil)
	if err != nil {
		return false, err
	}
	resp, err := a.do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return true, nil
	case http.StatusServiceUnavailable:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	default:
		return false, makeErrorForHTTPResponse(resp)
	}
}

func (a *Admin) Close() error {
	a.close()
	return nil
}
