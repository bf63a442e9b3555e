package stardog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

const sparqlResultsJson = "application/sparql-results+json"

var ErrConnectionClosed = errors.New("stardog connection is closed")

// Connection runs queries against a single database.
type Connection struct {
	*httpClient
	database string
	closed   atomic.Bool
}

func NewConnection(database string, config Config) (*Connection, error) {
	if strings.TrimSpace(database) == "" {
		return nil, errors.New("stardog database name must not be empty")
	}
	c, err := newHttpClient(config)
	if err != nil {
		return nil, err
	}
	return &Connection{httpClient: c, database: database}, nil
}

func (c *Connection) Database() string {
	return c.database
}

type selectOptions struct {
	reasoning bool
	limit     int
	timeout   time.Duration
}

type SelectOption func(*selectOptions)

// WithReasoning enables the server's reasoner for the query. Queries run without reasoning by default.
func WithReasoning(enabled bool) SelectOption {
	return func(o *selectOptions) {
		o.reasoning = enabled
	}
}

// WithLimit caps the number of result rows on the server side.
func WithLimit(limit int) SelectOption {
	return func(o *selectOptions) {
		o.limit = limit
	}
}

// WithQueryTimeout sets the server-side execution timeout of the query.
func WithQueryTimeout(timeout time.Duration) SelectOption {
	return func(o *selectOptions) {
		o.timeout = timeout
	}
}

// Select executes a SPARQL SELECT or ASK query and returns the decoded results.
// The query text is sent as-is; it is neither parsed nor validated here.
func (c *Connection) Select(ctx context.Context, query string, opts ...SelectOption) (*SelectResults, error) {
	if c.closed.Load() {
		return nil, errors.WithStack(ErrConnectionClosed)
	}
	options := &selectOptions{}
	for _, opt := range opts {
		opt(options)
	}

	form := url.Values{
		"query":     {query},
		"reasoning": {strconv.FormatBool(options.reasoning)},
	}
	if options.limit > 0 {
		form.Set("limit", strconv.Itoa(options.limit))
	}
	if options.timeout > 0 {
		form.Set("timeout", strconv.FormatInt(options.timeout.Milliseconds(), 10))
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/"+url.PathEscape(c.database)+"/query", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", sparqlResultsJson)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, makeErrorForHTTPResponse(resp)
	}

	results := &SelectResults{}
	if err := json.NewDecoder(resp.Body).Decode(results); err != nil {
		return nil, errors.Wrapf(err, "error decoding query results from database %s", c.database)
	}
	return results, nil
}

// Close releases the connection. Select fails once Close has been called.
func (c *Connection) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.close()
	return nil
}
