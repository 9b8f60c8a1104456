package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuss3d/foldserver/pkg/httputil"
)

func ExampleRetry() {
	attempt := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempt++
		if attempt == 1 {
			return &httputil.RetryableError{Err: errors.New("connection refused")}
		}
		return nil
	})
	fmt.Println("attempts:", attempt)
	fmt.Println("error:", err)
	// Output:
	// attempts: 2
	// error: <nil>
}
