package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/quillfeed/quillfeed/blog"
	"github.com/quillfeed/quillfeed/cache"
	"github.com/quillfeed/quillfeed/metrics"
	"github.com/quillfeed/quillfeed/mockdata"
)

const maxResponseBytes = 1 << 20

// RequestOption tunes a single read operation.
type RequestOption func(*requestOptions)

type requestOptions struct {
	forceRefresh bool
}

// WithForceRefresh bypasses the cache lookup for this call. The fresh
// response still repopulates the cache.
func WithForceRefresh() RequestOption {
	return func(o *requestOptions) { o.forceRefresh = true }
}

func applyOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fetch is the cache-through read path shared by every GET operation. The
// path builder receives the project id from the same identity snapshot the
// request headers and cache key use, so a concurrent Update can never tear
// them apart. On a live failure under the demo identity the mock closure
// rebuilds the response from the bundled dataset; mock results are never
// cached. A nil mock means the operation has no demo substitute.
func fetch[T any](ctx context.Context, c *Client, op string, pathFor func(projectID string) string, params url.Values, ttl time.Duration, opts []RequestOption, mock func() (T, bool)) (T, error) {
	var zero T
	o := applyOptions(opts)
	id := c.snapshot()
	path := pathFor(id.projectID)
	key := cache.Key(id.projectID, path, params)

	if !o.forceRefresh {
		entry, ok, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			c.metrics.ObserveCacheLookup(op, metrics.CacheLookupError)
			c.logger.Warn("cache lookup failed", slog.String("operation", op), slog.Any("error", err))
		case ok:
			var value T
			if err := json.Unmarshal(entry.Value, &value); err == nil {
				c.metrics.ObserveCacheLookup(op, metrics.CacheLookupHit)
				c.metrics.ObserveRequest(op, metrics.RequestOK, 0, true, 0)
				return value, nil
			}
			c.metrics.ObserveCacheLookup(op, metrics.CacheLookupError)
		default:
			c.metrics.ObserveCacheLookup(op, metrics.CacheLookupMiss)
		}
	}

	start := time.Now()
	raw, status, err := c.doGet(ctx, id, path, params)
	if err != nil {
		if IsCanceled(err) {
			return zero, err
		}
		if id.projectID == mockdata.ProjectID && mock != nil {
			if value, ok := mock(); ok {
				c.logger.Info("demo dataset substituted for failed request",
					slog.String("operation", op), slog.Any("error", err))
				c.metrics.ObserveRequest(op, metrics.RequestMock, status, false, time.Since(start))
				return value, nil
			}
		}
		c.metrics.ObserveRequest(op, metrics.RequestError, status, false, time.Since(start))
		return zero, err
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.metrics.ObserveRequest(op, metrics.RequestError, status, false, time.Since(start))
		return zero, &Error{Message: "decode response: " + err.Error(), Status: status, cause: err}
	}

	if ttl > 0 {
		if err := c.store.Set(ctx, key, raw, ttl); err != nil {
			c.logger.Warn("cache store failed", slog.String("operation", op), slog.Any("error", err))
		}
	}
	c.metrics.ObserveRequest(op, metrics.RequestOK, status, false, time.Since(start))
	return value, nil
}

// doGet issues an authenticated GET and unwraps the response envelope. The
// returned bytes are the envelope's data payload.
func (c *Client) doGet(ctx context.Context, id identity, path string, params url.Values) ([]byte, int, error) {
	target := id.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, &Error{Message: "build request: " + err.Error(), cause: err}
	}
	c.setHeaders(req, id)
	return c.execute(req)
}

// doPost issues an authenticated POST with a JSON body and unwraps the
// response envelope.
func (c *Client) doPost(ctx context.Context, id identity, path string, body any) ([]byte, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, &Error{Message: "encode request body: " + err.Error(), cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, id.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, &Error{Message: "build request: " + err.Error(), cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req, id)
	return c.execute(req)
}

func (c *Client) setHeaders(req *http.Request, id identity) {
	req.Header.Set("X-Project-ID", id.projectID)
	req.Header.Set("X-Secret-Key", id.secretKey)
	if id.apiKey != "" {
		req.Header.Set("X-API-Key", id.apiKey)
	}
	if id.language != "" {
		req.Header.Set("Accept-Language", id.language)
	}
	if id.timezone != "" {
		req.Header.Set("X-Timezone", id.timezone)
	}
	req.Header.Set("Accept", "application/json")
}

// execute runs the request and normalizes the outcome: transport failures
// keep their cause for cancellation checks, non-2xx and success:false
// envelopes become API errors carrying the backend's message and code.
func (c *Client) execute(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, newTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, newTransportError(err)
	}

	var envelope blog.Envelope
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil {
			return nil, resp.StatusCode, newAPIError(resp.StatusCode, envelope.Error, http.StatusText(resp.StatusCode))
		}
		return nil, resp.StatusCode, newAPIError(resp.StatusCode, nil, http.StatusText(resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, resp.StatusCode, &Error{Message: "decode envelope: " + decodeErr.Error(), Status: resp.StatusCode, cause: decodeErr}
	}
	if !envelope.Success {
		return nil, resp.StatusCode, newAPIError(resp.StatusCode, envelope.Error, "request failed")
	}
	return envelope.Data, resp.StatusCode, nil
}
