package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/toolshare/internal/pkg/circuitbreaker"
	"github.com/piresc/toolshare/internal/pkg/logger"
	nrpkg "github.com/piresc/toolshare/internal/pkg/newrelic"
	"github.com/piresc/toolshare/internal/pkg/retry"
)

// HTTPError is returned for upstream responses that should be retried
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// EnhancedClient wraps http.Client with a per-host circuit breaker, retries
// and New Relic external segments.
type EnhancedClient struct {
	client   *http.Client
	retrier  *retry.Retrier
	breakers *circuitbreaker.Manager
}

// NewEnhancedClient creates a client with the default retry policy
func NewEnhancedClient(log *logger.ZapLogger, timeout time.Duration) *EnhancedClient {
	return NewEnhancedClientWith(&http.Client{Timeout: timeout}, retry.NewWithDefaults(log), circuitbreaker.NewManager(log))
}

func NewEnhancedClientWith(client *http.Client, retrier *retry.Retrier, breakers *circuitbreaker.Manager) *EnhancedClient {
	return &EnhancedClient{client: client, retrier: retrier, breakers: breakers}
}

// Do sends req. 5xx and 429 responses are retried and count against the
// host's breaker; any other response is handed back to the caller, who owns
// the body. Requests with a body must be built so GetBody is set.
func (c *EnhancedClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	host := req.URL.Host
	if host == "" {
		host = "unknown"
	}

	var resp *http.Response
	err := c.breakers.Execute(ctx, host, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			attempt := req.Clone(ctx)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return retry.Permanent(fmt.Errorf("failed to rewind request body: %w", err))
				}
				attempt.Body = body
			}

			r, err := nrpkg.InstrumentHTTPRequest(ctx, attempt, func() (*http.Response, error) {
				return c.client.Do(attempt)
			})
			if err != nil {
				return err
			}

			if r.StatusCode >= http.StatusInternalServerError || r.StatusCode == http.StatusTooManyRequests {
				b, _ := io.ReadAll(io.LimitReader(r.Body, 4096))
				r.Body.Close()
				return &HTTPError{StatusCode: r.StatusCode, Body: string(b)}
			}

			resp = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DoJSON sends in as JSON and decodes a 2xx response into out. Non-2xx
// responses that are not retried come back as *HTTPError.
func (c *EnhancedClient) DoJSON(ctx context.Context, method, url string, headers map[string]string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *EnhancedClient) BreakerStats() map[string]string {
	return c.breakers.Stats()
}
