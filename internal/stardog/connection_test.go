package stardog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectResponse = `{"head":{"vars":["neuron","label"]},"results":{"bindings":[` +
	`{"neuron":{"type":"uri","value":"http://uri.interlex.org/tgbugs/uris/readable/neuron-type-keast-1"},` +
	`"label":{"type":"literal","value":"neuron type kblad 1","xml:lang":"en"}}]}}`

func newQueryServer(t *testing.T, check func(r *http.Request, form url.Values), status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		form, err := url.ParseQuery(string(b))
		require.NoError(t, err)
		if check != nil {
			check(r, form)
		}
		w.Header().Set("Content-Type", sparqlResultsJson)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestConnection_Select(t *testing.T) {
	server := newQueryServer(t, func(r *http.Request, form url.Values) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/SCKAN-NOV-2025/query", r.URL.Path)
		assert.Equal(t, sparqlResultsJson, r.Header.Get("Accept"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", username)
		assert.Equal(t, "secret", password)
		assert.Equal(t, "SELECT * WHERE { ?s ?p ?o }", form.Get("query"))
		assert.Equal(t, "false", form.Get("reasoning"))
		assert.Empty(t, form.Get("limit"))
		assert.Empty(t, form.Get("timeout"))
	}, http.StatusOK, selectResponse)
	defer server.Close()

	conn, err := NewConnection("SCKAN-NOV-2025", Config{Endpoint: server.URL, Username: "user", Password: "secret"})
	require.NoError(t, err)
	defer conn.Close()

	results, err := conn.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, []string{"neuron", "label"}, results.Vars())
	assert.Equal(t, 1, results.Len())
	var label struct {
		Lang string `json:"xml:lang"`
	}
	require.NoError(t, json.Unmarshal(results.Results.Bindings[0]["label"], &label))
	assert.Equal(t, "en", label.Lang)
	_, isAsk := results.AskResult()
	assert.False(t, isAsk)
}

func TestConnection_Select_Options(t *testing.T) {
	server := newQueryServer(t, func(r *http.Request, form url.Values) {
		assert.Equal(t, "true", form.Get("reasoning"))
		assert.Equal(t, "10", form.Get("limit"))
		assert.Equal(t, "1500", form.Get("timeout"))
	}, http.StatusOK, `{"head":{},"boolean":true}`)
	defer server.Close()

	conn, err := NewConnection("db", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	results, err := conn.Select(
		context.Background(),
		"ASK { ?s ?p ?o }",
		WithReasoning(true),
		WithLimit(10),
		WithQueryTimeout(1500*time.Millisecond),
	)
	require.NoError(t, err)
	answer, isAsk := results.AskResult()
	assert.True(t, isAsk)
	assert.True(t, answer)
	assert.Equal(t, 0, results.Len())
}

func TestConnection_Select_DatabaseNameIsEscaped(t *testing.T) {
	server := newQueryServer(t, func(r *http.Request, form url.Values) {
		assert.Equal(t, "/my%20db/query", r.URL.EscapedPath())
	}, http.StatusOK, selectResponse)
	defer server.Close()

	conn, err := NewConnection("my db", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Select(context.Background(), "SELECT * {}")
	require.NoError(t, err)
}

func TestConnection_Select_ServerError(t *testing.T) {
	server := newQueryServer(t, nil, http.StatusBadRequest, `{"message":"Encountered \" \"}\" \"} \"\" at line 1","code":"QE0PE2"}`)
	defer server.Close()

	conn, err := NewConnection("db", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Select(context.Background(), "SELECT * {")
	var stardogErr *Error
	require.True(t, errors.As(err, &stardogErr))
	assert.Equal(t, http.StatusBadRequest, stardogErr.StatusCode)
	assert.Equal(t, "QE0PE2", stardogErr.Code)
	assert.Contains(t, err.Error(), "returned HTTP 400 [QE0PE2]")
}

func TestConnection_Select_NonJsonErrorBody(t *testing.T) {
	server := newQueryServer(t, nil, http.StatusNotFound, "Database 'nope' does not exist\n")
	defer server.Close()

	conn, err := NewConnection("nope", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Select(context.Background(), "SELECT * {}")
	var stardogErr *Error
	require.True(t, errors.As(err, &stardogErr))
	assert.Equal(t, "Database 'nope' does not exist", stardogErr.Message)
}

func TestConnection_Select_NotAResultsDocument(t *testing.T) {
	server := newQueryServer(t, nil, http.StatusOK, `{"head":{"vars":[]}}`)
	defer server.Close()

	conn, err := NewConnection("db", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Select(context.Background(), "SELECT * {}")
	assert.Error(t, err)
}

func TestConnection_Select_AfterClose(t *testing.T) {
	conn, err := NewConnection("db", Config{Endpoint: "http://localhost:5820"})
	require.NoError(t, err)
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, err = conn.Select(context.Background(), "SELECT * {}")
	assert.True(t, errors.Is(err, ErrConnectionClosed))
}

func TestConnection_Select_ContextCancelled(t *testing.T) {
	server := newQueryServer(t, nil, http.StatusOK, selectResponse)
	defer server.Close()

	conn, err := NewConnection("db", Config{Endpoint: server.URL})
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = conn.Select(ctx, "SELECT * {}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewConnection_EmptyDatabase(t *testing.T) {
	_, err := NewConnection("  ", Config{Endpoint: "http://localhost:5820"})
	assert.Error(t, err)
}
