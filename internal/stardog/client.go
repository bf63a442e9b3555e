// Package stardog is a small client for the parts of the Stardog HTTP API the exporter uses:
// the liveness and health endpoints of the admin API and read-only SPARQL queries against a database.
package stardog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	alivePath       = "/admin/alive"
	healthcheckPath = "/admin/healthcheck"

	// Cap on how much of an error response body ends up in an error message.
	maxErrorBodyBytes = 4096
)

// Config holds what is needed to talk to a Stardog server.
type Config struct {
	// Base URL of the server, e.g. https://stardog.scicrunch.io:5821
	Endpoint string
	Username string
	Password string
}

// Error is returned for any non-2xx answer from the server.
// Code and Message are taken from the Stardog JSON error body when there is one.
type Error struct {
	Method     string
	Url        string
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s %s returned HTTP %d", e.Method, e.Url, e.StatusCode)
	if e.Code != "" {
		s += fmt.Sprintf(" [%s]", e.Code)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// AliveURL is the unauthenticated liveness endpoint of the server at endpoint.
func AliveURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + alivePath
}

type httpClient struct {
	endpoint *url.URL
	username string
	password string
	// Has its own transport, so that close releases only this client's connections.
	client *http.Client
}

func newHttpClient(config Config) (*httpClient, error) {
	endpoint, err := parseEndpoint(config.Endpoint)
	if err != nil {
		return nil, err
	}
	c := &httpClient{
		endpoint: endpoint,
		username: config.Username,
		password: config.Password,
		client:   &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
	}
	return c, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Stardog endpoint %q", endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid Stardog endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, errors.Errorf("invalid Stardog endpoint %q: missing host", endpoint)
	}
	return u, nil
}

func (c *httpClient) url(path string) string {
	u := *c.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *httpClient) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

func (c *httpClient) do(req *http.Request) (*http.Response, error) {
	log.WithField("url", req.URL.String()).Debugf("stardog: %s", req.Method)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return resp, nil
}

func (c *httpClient) close() {
	c.client.CloseIdleConnections()
}

func makeErrorForHTTPResponse(resp *http.Response) error {
	e := &Error{
		Method:     resp.Request.Method,
		Url:        resp.Request.URL.Redacted(),
		StatusCode: resp.StatusCode,
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return errors.WithStack(e)
	}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if json.Unmarshal(bodyBytes, &body) == nil && (body.Message != "" || body.Code != "") {
		e.Message = body.Message
		e.Code = body.Code
	} else {
		e.Message = strings.TrimSpace(string(bodyBytes))
	}
	return errors.WithStack(e)
}
