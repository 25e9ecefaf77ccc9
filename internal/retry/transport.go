package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Default retry configuration: three attempts in total.
const (
	defaultMaxRetries         = 2
	defaultInitialRetryDelay  = 200 * time.Millisecond
	defaultMaxRetryDelay      = 2 * time.Second
	defaultRetryDelayMultiple = 2.0
)

// Transport is an http.RoundTripper that retries failed requests with
// exponential backoff. Requests with a body are only retried when the body
// can be replayed through Request.GetBody.
type Transport struct {
	maxRetries         int
	initialRetryDelay  time.Duration
	maxRetryDelay      time.Duration
	retryDelayMultiple float64
	base               http.RoundTripper
	retryableChecker   RetryableChecker
	sleep              func(ctx context.Context, d time.Duration) error
}

// RetryableChecker determines if an error or response should trigger a retry
type RetryableChecker func(err error, resp *http.Response) bool

// Option configures a Transport
type Option func(*Transport)

// WithMaxRetries sets the maximum number of retry attempts after the first one
func WithMaxRetries(n int) Option {
	return func(t *Transport) {
		if n >= 0 {
			t.maxRetries = n
		}
	}
}

// WithInitialRetryDelay sets the initial delay before the first retry
func WithInitialRetryDelay(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.initialRetryDelay = d
		}
	}
}

// WithMaxRetryDelay sets the maximum delay between retries
func WithMaxRetryDelay(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.maxRetryDelay = d
		}
	}
}

// WithRetryDelayMultiple sets the exponential backoff multiplier
func WithRetryDelayMultiple(multiplier float64) Option {
	return func(t *Transport) {
		if multiplier > 1.0 {
			t.retryDelayMultiple = multiplier
		}
	}
}

// WithBase sets the underlying round tripper
func WithBase(base http.RoundTripper) Option {
	return func(t *Transport) {
		if base != nil {
			t.base = base
		}
	}
}

// WithRetryableChecker sets a custom function to determine retryable errors
func WithRetryableChecker(checker RetryableChecker) Option {
	return func(t *Transport) {
		if checker != nil {
			t.retryableChecker = checker
		}
	}
}

// NewTransport creates a retrying round tripper with the given options
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		maxRetries:         defaultMaxRetries,
		initialRetryDelay:  defaultInitialRetryDelay,
		maxRetryDelay:      defaultMaxRetryDelay,
		retryDelayMultiple: defaultRetryDelayMultiple,
		base:               http.DefaultTransport,
		retryableChecker:   DefaultRetryableChecker,
		sleep:              sleepContext,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// DefaultRetryableChecker retries network errors and 5xx responses.
// 4xx responses, including 429, are returned to the caller untouched;
// cancellation and deadline errors are never retried.
func DefaultRetryableChecker(err error, resp *http.Response) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	if resp == nil {
		return false
	}

	return resp.StatusCode >= 500
}

// RoundTrip executes req, retrying with exponential backoff.
// After the last attempt the final response or error is returned as is.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	var lastErr error
	var resp *http.Response
	delay := t.initialRetryDelay

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			if err := t.sleep(ctx, delay); err != nil {
				if lastErr != nil {
					return nil, fmt.Errorf("context cancelled after %d attempts: %w", attempt, lastErr)
				}
				return nil, err
			}
			delay = min(time.Duration(float64(delay)*t.retryDelayMultiple), t.maxRetryDelay)
		}

		attemptReq, err := t.prepare(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, lastErr = t.base.RoundTrip(attemptReq)

		if !replayable || attempt == t.maxRetries || !t.retryableChecker(lastErr, resp) {
			return resp, lastErr
		}

		// Drain before retry to release the connection
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
	}

	return resp, lastErr
}

// prepare returns the request for one attempt, rewinding its body after the first.
func (t *Transport) prepare(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 0 || req.GetBody == nil {
		return req, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
