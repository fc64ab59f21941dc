package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// statusError is a non-2xx response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.Code, e.Body)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// getWithRetry issues a GET and returns the body of a 200 response. 429 and
// 5xx responses and transport errors are retried with exponential backoff;
// other statuses fail at once.
func getWithRetry(ctx context.Context, client *http.Client, url string, maxRetries int, backoff time.Duration) ([]byte, error) {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		body, err := get(ctx, client, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		var se *statusError
		if errors.As(err, &se) && !retryable(se.Code) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if i == maxRetries {
			break
		}
		wait := backoff * time.Duration(1<<uint(i))
		log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", wait).Msg("request failed, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > 256 {
			body = body[:256]
		}
		return nil, &statusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// newHTTPClient returns a client with an optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := parseURL(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			log.Warn().Err(err).Str("proxy", proxyURL).Msg("ignoring invalid proxy url")
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
