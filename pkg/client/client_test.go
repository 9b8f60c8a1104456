package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuss3d/foldserver/pkg/api"
	"github.com/nuss3d/foldserver/pkg/config"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/httputil"
	"github.com/nuss3d/foldserver/pkg/job"
	"github.com/nuss3d/foldserver/pkg/normalize"
	"github.com/nuss3d/foldserver/pkg/solver"
	"github.com/nuss3d/foldserver/pkg/store"
)

func newAPIServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	cfg := config.DefaultAt(t.TempDir())
	st, err := store.NewFileStore(cfg.JobsDir)
	require.NoError(t, err)

	runner := solver.FuncRunner(func(context.Context, solver.Invocation) (string, error) {
		return text, nil
	})
	logger := log.New(io.Discard)
	orch := job.NewOrchestrator(cfg, runner, st, nil, nil, logger)
	t.Cleanup(func() { orch.Close() })

	srv := httptest.NewServer(api.NewServer(cfg, orch, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func fastClient(baseURL string) *Client {
	c := New(baseURL)
	c.Backoff = time.Millisecond
	return c
}

func TestClientRoundTrip(t *testing.T) {
	srv := newAPIServer(t, "1 2\n3 4\n")
	c := fastClient(srv.URL)
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	resp, err := c.Fold(ctx, "GGGAAACUCCC", "oryg", 2)
	require.NoError(t, err)
	assert.Equal(t, "oryg", resp.Method)

	doc, err := c.FetchResult(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, normalize.Matrix{{1, 2}, {0, 3}}, doc.S)

	raw, err := c.FetchResultRaw(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, `{"S":[[1,2],[0,3]]}`, string(raw))
}

func TestClientCodedErrors(t *testing.T) {
	srv := newAPIServer(t, "no numbers\n")
	c := fastClient(srv.URL)
	ctx := context.Background()

	_, err := c.Fold(ctx, "GGGAAACUCCC", "oryg", 2)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrCodeParse), "got %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, httputil.StatusOf(err))

	_, err = c.FetchResult(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.ErrCodeJobNotFound), "got %v", err)

	_, err = c.Fold(ctx, "ACGU", "oryg", 2)
	assert.True(t, apperr.Is(err, apperr.ErrCodeInvalidSequence), "got %v", err)
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			httputil.WriteError(w, apperr.New(apperr.ErrCodeInternal, "warming up"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Version: "test"})
	}))
	defer srv.Close()

	health, err := fastClient(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetrySolverFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		httputil.WriteError(w, apperr.New(apperr.ErrCodeSolverFailed, "solver exited with status 1"))
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Fold(context.Background(), "GGGAAACUCCC", "oryg", 1)
	assert.True(t, apperr.IsSolverFailure(err), "got %v", err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := fastClient(url).Health(context.Background())
	assert.True(t, apperr.Is(err, apperr.ErrCodeNetwork), "got %v", err)
}

func TestNewDefaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "http://host:1", New("http://host:1/").BaseURL)
}
