// Package authclient resolves bearer tokens against the authentication
// collaborator. The feed service itself never stores credentials; it
// only needs the caller's identity.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"trip-feed-service/internal/domain"
)

// Endpoint is the collaborator's identity resolution path.
const Endpoint = "/api/v1/auth/me"

// ErrUnauthorized is returned when the collaborator rejects the token.
var ErrUnauthorized = errors.New("unauthorized")

// ClientConfig holds configuration for the auth client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// identityResponse is the collaborator's wire format.
type identityResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Client calls the authentication collaborator over HTTP with retries
// and a circuit breaker. Rejected tokens never trip the breaker; only
// transport failures and 5xx responses do.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new auth client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "auth",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger: logger,
	}
}

// Identify resolves a bearer token to the caller's identity. Returns
// ErrUnauthorized for tokens the collaborator rejects.
func (c *Client) Identify(ctx context.Context, token string) (*domain.Identity, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result identityResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.StatusCode() == http.StatusUnauthorized || r.StatusCode() == http.StatusForbidden {
			return r, nil
		}
		if r.IsError() {
			return nil, fmt.Errorf("auth service returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("identity resolution failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("resolving identity: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	result := resp.Result().(*identityResponse)

	return &domain.Identity{ID: result.ID, Username: result.Username}, nil
}

// HealthCheck verifies the collaborator is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
