package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

// API paths
const (
	PathDiscover   = "/api/discover"
	PathViralIdeas = "/api/generate-viral-ideas"
	PathAnalyze    = "/api/analyze"
	PathHealth     = "/"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

type keywordsResponse struct {
	Keywords []string `json:"keywords"`
}

type analyzeResponse struct {
	Keyword string         `json:"keyword"`
	Videos  []video.Record `json:"videos"`
}

// errorResponse is the error body of the API; detail is a string for
// handled errors and a list for request validation failures.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// HTTPClient talks to the discovery/analysis REST API
type HTTPClient struct {
	cfg     config.BackendConfig
	client  *http.Client
	baseURL *url.URL
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

// NewHTTPClient creates a client for cfg.BaseURL
func NewHTTPClient(cfg config.BackendConfig, log *logger.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, NewError(ErrTypeConfiguration, "", "base URL is required")
	}
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, NewErrorWithCause(ErrTypeConfiguration, "", "invalid base URL: "+cfg.BaseURL, err)
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("backend")

	c := &HTTPClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: baseURL,
		log:     log,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "trendlens-backend",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(max(cfg.BreakerFailures, 1))
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WarnWithFields("circuit breaker state changed", []logger.Field{
				logger.F("breaker", name), logger.F("from", from.String()), logger.F("to", to.String()),
			})
		},
	})
	return c, nil
}

// breakerSuccess keeps answers that prove the backend is up (client errors,
// caller cancellation) from tripping the breaker.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var be *Error
	if errors.As(err, &be) && be.Type == ErrTypeStatus && !be.Retryable {
		return true
	}
	return false
}

// Name returns the provider name
func (c *HTTPClient) Name() string {
	return "http"
}

// Discover expands a niche into keywords
func (c *HTTPClient) Discover(ctx context.Context, req query.DiscoveryRequest) ([]string, error) {
	var resp keywordsResponse
	if err := c.call(ctx, http.MethodPost, PathDiscover, req, &resp); err != nil {
		return nil, err
	}
	return resp.Keywords, nil
}

// GenerateViralIdeas asks the backend for random viral keywords
func (c *HTTPClient) GenerateViralIdeas(ctx context.Context) ([]string, error) {
	var resp keywordsResponse
	if err := c.call(ctx, http.MethodPost, PathViralIdeas, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Keywords, nil
}

// Analyze ranks videos for a keyword
func (c *HTTPClient) Analyze(ctx context.Context, req query.AnalysisRequest) ([]video.Record, error) {
	var resp analyzeResponse
	if err := c.call(ctx, http.MethodPost, PathAnalyze, req, &resp); err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

// HealthCheck verifies the backend answers on its root path. It bypasses
// retries and the breaker.
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	return c.attempt(ctx, http.MethodGet, PathHealth, nil, nil)
}

// call runs one API operation with retries around a circuit breaker
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out interface{}) error {
	start := time.Now()

	policy := backoff.NewExponentialBackOff()
	if c.cfg.RetryDelay > 0 {
		policy.InitialInterval = c.cfg.RetryDelay
	}

	operation := func() (struct{}, error) {
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.attempt(ctx, method, path, body, out)
		})
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return struct{}{}, backoff.Permanent(NewErrorWithCause(ErrTypeCircuitOpen, path,
				"backend temporarily unavailable", err))
		}
		if !IsRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.cfg.RetryAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.DebugWithFields("retrying backend call", []logger.Field{
				logger.F("path", path), logger.Error(err), logger.F("backoff", next),
			})
		}),
	)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	c.log.DebugWithFields("backend call finished", []logger.Field{
		logger.F("path", path), logger.Duration(time.Since(start)), logger.F("ok", err == nil),
	})
	if err != nil && ctx.Err() != nil && !errors.As(err, new(*Error)) {
		return NewErrorWithCause(ErrTypeTimeout, path, "request cancelled", err)
	}
	return err
}

// attempt performs a single HTTP exchange
func (c *HTTPClient) attempt(ctx context.Context, method, path string, body, out interface{}) error {
	endpoint := c.baseURL.JoinPath(path)
	requestID := uuid.NewString()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return NewErrorWithCause(ErrTypeInternal, path, "failed to marshal request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return NewErrorWithCause(ErrTypeInternal, path, "failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		errType := ErrTypeNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			errType = ErrTypeTimeout
		}
		e := NewErrorWithCause(errType, path, "request failed", err)
		e.RequestID = requestID
		if errors.Is(err, context.Canceled) {
			e.Retryable = false
		}
		return e
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		e := NewStatusError(path, resp.StatusCode, errorDetail(data))
		e.RequestID = requestID
		return e
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		e := NewErrorWithCause(ErrTypeDecode, path, "failed to decode response", err)
		e.RequestID = requestID
		return e
	}
	return nil
}

// errorDetail extracts the API's error detail from a response body
func errorDetail(body []byte) string {
	var er errorResponse
	if json.Unmarshal(body, &er) != nil || len(er.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(er.Detail, &s) == nil {
		return s
	}
	return fmt.Sprintf("invalid request: %s", string(er.Detail))
}
