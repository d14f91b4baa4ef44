// Package httputil provides HTTP helpers shared by the outbound adapters.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// RetryBaseDelay is the first backoff on HTTP 429. Tests override it.
var RetryBaseDelay = 250 * time.Millisecond

// MaxBodyBytes caps how much of an upstream body is read.
const MaxBodyBytes = 4 << 20

const defaultMaxRetries = 2

// DoWithRetry executes req and retries on HTTP 429 with exponential backoff
// (base, 2*base, 4*base...). A Retry-After header in seconds takes precedence
// when it is shorter than the remaining context deadline.
//
// When maxRetries is 0 the default is used. After exhausting retries the last
// 429 response is returned so the caller can inspect it. A cancelled context
// during a backoff wait returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if ra := retryAfter(resp.Header.Get("Retry-After")); ra > 0 {
			backoff = ra
		}
		if dl, ok := ctx.Deadline(); ok && time.Until(dl) < backoff {
			return nil, fmt.Errorf("%w: backoff %v exceeds deadline: %w", domain.ErrRateLimited, backoff, context.DeadlineExceeded)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// StatusError is returned by DecodeJSON for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// DecodeJSON checks the status of resp, then decodes its body into v.
// The body is always closed.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, MaxBodyBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
