package style

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Fetcher downloads a remote style document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches styles with a plain GET.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher builds a fetcher whose requests give up after timeout.
// A zero timeout means no limit beyond the context's.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: client}
}

// Fetch implements Fetcher. Any non-2xx response is an error; failures are
// not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("unexpected response %s", resp.Status())
	}
	return resp.String(), nil
}
