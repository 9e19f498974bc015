package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultAttempts = 3

const baseDelay = 200 * time.Millisecond

// StatusError carries the last non-2xx response seen before giving up.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// Options describe one outbound request. Method defaults to POST.
type Options struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Do sends the request up to maxAttempts times, waiting 200ms, 400ms, 800ms...
// between attempts. Every non-2xx status is retried the same way regardless of
// class; a 400 gets the same schedule as a 500. Transport-level errors are not
// retried.
func Do(ctx context.Context, client *resty.Client, url string, opts Options, maxAttempts int) (*resty.Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultAttempts
	}
	method := opts.Method
	if method == "" {
		method = http.MethodPost
	}

	var last *StatusError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req := client.R().SetContext(ctx)
		if len(opts.Headers) > 0 {
			req.SetHeaders(opts.Headers)
		}
		if opts.Body != nil {
			req.SetBody(opts.Body)
		}

		resp, err := req.Execute(method, url)
		if err != nil {
			return nil, fmt.Errorf("request to %s: %w", url, err)
		}
		if resp.IsSuccess() {
			return resp, nil
		}

		last = &StatusError{Status: resp.StatusCode(), Body: string(resp.Body())}

		if attempt < maxAttempts {
			select {
			case <-time.After(baseDelay << (attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("request to %s failed after %d attempts: %w", url, maxAttempts, last)
}
