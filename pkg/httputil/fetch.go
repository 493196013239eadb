package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	qerrors "github.com/matzehuels/questgraph/pkg/errors"
)

// MaxBodySize bounds a downloaded quest file.
const MaxBodySize = 32 << 20

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay after each retryable
// failure. Other errors are returned at once.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// Fetcher downloads quest files.
type Fetcher struct {
	Client    *http.Client
	Cache     *Cache // optional
	Attempts  int
	Delay     time.Duration
	UserAgent string
}

// NewFetcher returns a fetcher with a 30s client timeout and 3 attempts.
// c may be nil to disable caching.
func NewFetcher(c *Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		Attempts: 3,
		Delay:    500 * time.Millisecond,
	}
}

// Fetch returns the body at url. A fresh cache entry is returned without a
// request; an expired one is revalidated with If-None-Match and served as
// is when the server cannot be reached.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var cached Entry
	var have bool
	if f.Cache != nil {
		e, ok, err := f.Cache.Get(url)
		if ok && err == nil {
			return e.Body, nil
		}
		cached, have = e, ok
	}

	var body []byte
	var notModified bool
	var etag string
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, etag, notModified, err = f.get(ctx, url, cached.ETag)
		return err
	})

	switch {
	case err == nil && notModified && have:
		body = cached.Body
		etag = cached.ETag
	case err != nil && have && errors.As(err, new(*RetryableError)):
		return cached.Body, nil
	case err != nil:
		return nil, err
	}

	if f.Cache != nil {
		_ = f.Cache.Set(Entry{URL: url, ETag: etag, FetchedAt: time.Now(), Body: body})
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url, etag string) ([]byte, string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", false, qerrors.Wrap(qerrors.ErrCodeInvalidPath, err, "quest url %s", url)
	}
	req.Header.Set("Accept", "application/json")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", false, ctx.Err()
		}
		return nil, "", false, &RetryableError{Err: fmt.Errorf("fetch %s: %w", url, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil, etag, true, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", false, qerrors.New(qerrors.ErrCodeFileNotFound, "quest file %s: 404", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, "", false, &RetryableError{Err: fmt.Errorf("fetch %s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, "", false, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, "", false, &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
	}
	if len(body) > MaxBodySize {
		return nil, "", false, qerrors.New(qerrors.ErrCodeInvalidInput, "quest file %s exceeds %d bytes", url, MaxBodySize)
	}
	return body, resp.Header.Get("ETag"), false, nil
}
