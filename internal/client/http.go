package client

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/retry"

	"github.com/appleboy/go-httpclient"
)

// Options configures the outbound client used for provider token and file APIs.
type Options struct {
	Timeout           time.Duration
	MaxRetries        int
	InitialRetryDelay time.Duration
	MaxRetryDelay     time.Duration
}

// CreateOptimizedTransport returns a transport with a connection pool sized
// for a handful of provider hosts hit concurrently.
func CreateOptimizedTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// NewProviderClient creates the HTTP client shared by OAuth clients and file
// providers. Requests are retried on network errors and 5xx responses.
func NewProviderClient(opts Options) (*http.Client, error) {
	transport := retry.NewTransport(
		retry.WithBase(CreateOptimizedTransport()),
		retry.WithMaxRetries(opts.MaxRetries),
		retry.WithInitialRetryDelay(opts.InitialRetryDelay),
		retry.WithMaxRetryDelay(opts.MaxRetryDelay),
	)

	httpClient, err := httpclient.NewClient(
		httpclient.WithTimeout(opts.Timeout),
		httpclient.WithTransport(transport),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider HTTP client: %w", err)
	}
	return httpClient, nil
}
