package geolib

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if h.client.Timeout > 0 {
		ctx, _ := context.WithTimeout(req.Context(), h.client.Timeout) // nolint: govet
		req = req.WithContext(ctx)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)

	if limiterErr := h.rateLimiter.Wait(req.Context()); limiterErr != nil {
		if resp != nil {
			io.Copy(io.Discard, resp.Body) // nolint: errcheck
			resp.Body.Close()
		}

		return nil, limiterErr
	}

	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()

		return nil, fmt.Errorf("netloc has responded with %s", resp.Status)
	}

	return resp, nil
}

// NewHTTPClient prepares a new HTTP client: wraps it with a rate
// limiter, sets a user agent and propagates the client timeout into
// the request context.
//
// The limiter is consulted once per request, after the response has
// arrived, so with a burst of 1 an interval of 100ms keeps successive
// outbound calls at least 100ms apart. An interval <= 0 disables
// pacing.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimiterInterval), rateLimitBurst),
	}
}
