package sckannli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/export"
	"github.com/scicrunch/sckan-nli/pkg/client"
)

const resultsJson = `{"head":{"vars":["s"]},"results":{"bindings":[{"s":{"type":"uri","value":"http://uri.interlex.org/base/ilx_0738400"}}]}}`

// fakeStardog answers the three endpoints the exporter uses.
type fakeStardog struct {
	aliveStatus  int
	healthStatus int
	// Query text that makes the query endpoint answer 500.
	failingQuery string
	queries      atomic.Int32
}

func (f *fakeStardog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/admin/alive":
		w.WriteHeader(f.aliveStatus)
	case "/admin/healthcheck":
		w.WriteHeader(f.healthStatus)
	case "/SCKAN-TEST/query":
		f.queries.Add(1)
		if err := r.ParseForm(); err != nil || r.PostForm.Get("reasoning") != "false" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if username, password, ok := r.BasicAuth(); !ok || username != "user" || password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.failingQuery != "" && r.PostForm.Get("query") == f.failingQuery {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"Query execution failed","code":"QE0PE2"}`))
			return
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(resultsJson))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestApp(t *testing.T, fake *fakeStardog) (*App, *bytes.Buffer, string) {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	plan := &export.Plan{}
	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".rq"), []byte("SELECT ?s WHERE { ?s ?p ?o } # "+name), 0o644))
		plan.Steps = append(plan.Steps, export.Step{Query: name + ".rq", Output: filepath.Join("out", name+".json")})
	}

	out := &bytes.Buffer{}
	app := &App{
		Params: &Params{
			ConnectionDetails: &client.ConnectionDetails{
				Endpoint: server.URL,
				Database: "SCKAN-TEST",
				Username: "user",
				Password: "secret",
				Timeout:  5 * time.Second,
			},
			Plan: plan.Resolve(dir),
		},
		Out: out,
	}
	return app, out, dir
}

func TestApp_Export(t *testing.T) {
	fake := &fakeStardog{aliveStatus: http.StatusOK, healthStatus: http.StatusOK}
	app, out, dir := newTestApp(t, fake)
	app.Params.JUnitPath = filepath.Join(dir, "reports", "junit.xml")
	app.Params.MetricsPath = filepath.Join(dir, "reports", "sckan-nli.prom")

	require.NoError(t, app.Export(context.Background()))
	assert.Equal(t, int32(3), fake.queries.Load())

	for _, name := range []string{"first", "second", "third"} {
		data, err := os.ReadFile(filepath.Join(dir, "out", name+".json"))
		require.NoError(t, err)
		assert.JSONEq(t, resultsJson, string(data))
		assert.True(t, strings.HasPrefix(string(data), "{\n  \"head\""))
	}

	output := out.String()
	for _, expected := range []string{
		"Program execution started...",
		"Running connectivity pre-check to Stardog endpoint...",
		"reachable (200 OK)",
		"Step 0: Checking Stardog server status..",
		"Server Status: Stardog server is running and able to accept traffic.",
		"Step 0: Done!",
		"Step 1: Executing query from: " + filepath.Join(dir, "first.rq"),
		"Step 3: Done!",
		"======= SUMMARY =======",
		"All queries executed and results are saved successfully!",
	} {
		assert.Contains(t, output, expected)
	}
	assert.Less(t, strings.Index(output, "Step 0: Done!"), strings.Index(output, "Step 1: Executing"))

	junitXml, err := os.ReadFile(app.Params.JUnitPath)
	require.NoError(t, err)
	assert.Contains(t, string(junitXml), `tests="3"`)

	metrics, err := os.ReadFile(app.Params.MetricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "sckan_nli_export_success 1")
	assert.Contains(t, string(metrics), `log_messages{level="error"} 0`)
}

func TestApp_Export_Failures(t *testing.T) {
	tests := map[string]struct {
		fake         *fakeStardog
		modify       func(app *App)
		wantExitCode int
		wantQueries  int32
		check        func(t *testing.T, err error)
	}{
		"missing credentials": {
			fake:         &fakeStardog{aliveStatus: http.StatusOK, healthStatus: http.StatusOK},
			modify:       func(app *App) { app.Params.ConnectionDetails.Password = "" },
			wantExitCode: sckanerrors.ExitCodeInvalidArgument,
			check: func(t *testing.T, err error) {
				var e *sckanerrors.ErrMissingCredentials
				assert.True(t, errors.As(err, &e))
			},
		},
		"endpoint not alive": {
			fake:         &fakeStardog{aliveStatus: http.StatusBadGateway, healthStatus: http.StatusOK},
			wantExitCode: sckanerrors.ExitCodeFailure,
			check: func(t *testing.T, err error) {
				var e *sckanerrors.ErrUnreachable
				require.True(t, errors.As(err, &e))
				assert.Equal(t, http.StatusBadGateway, e.StatusCode)
				assert.Contains(t, sckanerrors.HintFromError(err), "Try: curl -v "+e.Url)
			},
		},
		"server unhealthy": {
			fake:         &fakeStardog{aliveStatus: http.StatusOK, healthStatus: http.StatusServiceUnavailable},
			wantExitCode: sckanerrors.ExitCodeFailure,
			check: func(t *testing.T, err error) {
				var e *sckanerrors.ErrUnhealthy
				assert.True(t, errors.As(err, &e))
			},
		},
		"healthcheck rejected": {
			fake:         &fakeStardog{aliveStatus: http.StatusOK, healthStatus: http.StatusForbidden},
			wantExitCode: sckanerrors.ExitCodeFailure,
			check: func(t *testing.T, err error) {
				var e *sckanerrors.ErrAdmin
				assert.True(t, errors.As(err, &e))
			},
		},
		"second query fails": {
			fake: &fakeStardog{
				aliveStatus:  http.StatusOK,
				healthStatus: http.StatusOK,
				failingQuery: "SELECT ?s WHERE { ?s ?p ?o } # second",
			},
			wantExitCode: sckanerrors.ExitCodeFailure,
			wantQueries:  2,
			check: func(t *testing.T, err error) {
				var e *sckanerrors.ErrQueryFailed
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 2, e.Step)
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			app, out, dir := newTestApp(t, tc.fake)
			if tc.modify != nil {
				tc.modify(app)
			}

			err := app.Export(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.wantExitCode, sckanerrors.ExitCodeFromError(err))
			assert.Equal(t, tc.wantQueries, tc.fake.queries.Load())
			assert.NotContains(t, out.String(), "All queries executed and results are saved successfully!")
			assert.NoFileExists(t, filepath.Join(dir, "out", "third.json"))
			tc.check(t, err)
		})
	}
}

func TestApp_Export_ArtifactsWrittenOnFailure(t *testing.T) {
	fake := &fakeStardog{
		aliveStatus:  http.StatusOK,
		healthStatus: http.StatusOK,
		failingQuery: "SELECT ?s WHERE { ?s ?p ?o } # first",
	}
	app, out, dir := newTestApp(t, fake)
	app.Params.JUnitPath = filepath.Join(dir, "junit.xml")
	app.Params.MetricsPath = filepath.Join(dir, "sckan-nli.prom")

	require.Error(t, app.Export(context.Background()))
	assert.Contains(t, out.String(), "Skipped: 2")

	junitXml, err := os.ReadFile(app.Params.JUnitPath)
	require.NoError(t, err)
	assert.Contains(t, string(junitXml), `failures="1"`)

	metrics, err := os.ReadFile(app.Params.MetricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "sckan_nli_export_success 0")
}

func TestApp_Check(t *testing.T) {
	fake := &fakeStardog{aliveStatus: http.StatusOK, healthStatus: http.StatusOK}
	app, out, _ := newTestApp(t, fake)

	require.NoError(t, app.Check(context.Background()))
	assert.Contains(t, out.String(), "Server Status: Stardog server is running and able to accept traffic.")
	assert.Equal(t, int32(0), fake.queries.Load())
}

func TestApp_ListQueries(t *testing.T) {
	app := New()
	out := &bytes.Buffer{}
	app.Out = out

	require.NoError(t, app.ListQueries())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[0], "QUERY")
	assert.Contains(t, lines[7], "./sparql-queries/senmot-organ-innervation.rq")
	assert.Contains(t, lines[7], "./sckan-nli-data/senmot-organ-innervation.json")
}

func TestApp_ListQueries_InvalidPlan(t *testing.T) {
	app := New()
	app.Out = &bytes.Buffer{}
	app.Params.Plan = &export.Plan{}
	assert.Equal(t, sckanerrors.ExitCodeInvalidArgument, sckanerrors.ExitCodeFromError(app.ListQueries()))
}

func TestApp_Version(t *testing.T) {
	out := &bytes.Buffer{}
	app := &App{Params: &Params{}, Out: out}
	require.NoError(t, app.Version())
	assert.Contains(t, out.String(), "Version:")
	assert.Contains(t, out.String(), "Go version:")
}
