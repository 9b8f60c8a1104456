// Package client talks to a running foldserver API.
//
//	c := client.New("http://localhost:8000")
//	resp, err := c.Fold(ctx, "GGGAAACUCCC", "oryg", 4)
//	if err != nil {
//	    return err
//	}
//	doc, err := c.FetchResult(ctx, resp.JobID)
//
// Non-2xx responses are returned as coded errors carrying the server's
// error code, so errors.Is(err, errors.ErrCodeParse) from pkg/errors works
// across the wire.
// Network failures and retryable statuses are retried with exponential
// backoff; solver failures (502, 504) are not.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nuss3d/foldserver/pkg/api"
	"github.com/nuss3d/foldserver/pkg/buildinfo"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/httputil"
	"github.com/nuss3d/foldserver/pkg/job"
	"github.com/nuss3d/foldserver/pkg/normalize"
)

// DefaultBaseURL is the address of a locally running server.
const DefaultBaseURL = "http://localhost:8000"

// Client is an API client. The zero value is not usable; use New.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// Attempts and Backoff control retries of transient failures.
	Attempts int
	Backoff  time.Duration
}

// New returns a client for the server at baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{},
		Attempts: 3,
		Backoff:  time.Second,
	}
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fold submits a fold job and waits for it to finish.
func (c *Client) Fold(ctx context.Context, sequence, method string, threads int) (*job.FoldResponse, error) {
	body, err := json.Marshal(job.FoldRequest{Sequence: sequence, Method: method, Threads: threads})
	if err != nil {
		return nil, err
	}

	var out job.FoldResponse
	data, err := c.do(ctx, http.MethodPost, "/fold", body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeNetwork, err, "decode fold response")
	}
	return &out, nil
}

// FetchResult downloads and decodes the document of a job.
func (c *Client) FetchResult(ctx context.Context, jobID string) (*normalize.Document, error) {
	data, err := c.FetchResultRaw(ctx, jobID)
	if err != nil {
		return nil, err
	}
	doc, err := normalize.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeNetwork, err, "decode result")
	}
	return doc, nil
}

// FetchResultRaw returns the S.json bytes of a job as served.
func (c *Client) FetchResultRaw(ctx context.Context, jobID string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/result/"+url.PathEscape(jobID), nil)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "decode %s", path)
	}
	return nil
}

// do performs one API call with retries and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	endpoint := c.BaseURL + api.Prefix + path

	var data []byte
	err := httputil.Retry(ctx, c.Attempts, c.Backoff, func() error {
		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", buildinfo.UserAgent())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: apperr.Wrap(apperr.ErrCodeNetwork, err, "%s %s", method, path)}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return httputil.ResponseError(resp)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: apperr.Wrap(apperr.ErrCodeNetwork, err, "read response")}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return data, nil
}
