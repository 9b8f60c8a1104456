// Package httputil provides HTTP plumbing shared by the API server and
// its client.
//
// # Overview
//
//   - [WriteJSON], [WriteError]: JSON responses, with coded errors mapped to
//     status codes via [github.com/nuss3d/foldserver/pkg/errors.HTTPStatus]
//   - [DecodeJSON]: size-limited strict request decoding
//   - [ReadError]: turns an error response back into a coded error
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Error bodies
//
// Every non-2xx response carries
//
//	{"code": "PARSE_ERROR", "detail": "no numeric content"}
//
// so clients can tell a conversion failure from a solver failure without
// parsing messages.
//
// # Retry
//
// [Retry] only repeats errors wrapped in [RetryableError]. Wrap network
// errors and retryable status codes ([RetryableStatus]) and leave
// everything else unwrapped:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
