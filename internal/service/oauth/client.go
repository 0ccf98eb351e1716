package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phrazzld/nestly-api/internal/platform/logger"
	"github.com/phrazzld/nestly-api/internal/redact"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

const defaultTimeout = 10 * time.Second

// client holds the transport shared by every provider: the oauth2 config
// for the code exchange, a resty client for profile calls, and a circuit
// breaker guarding both.
type client struct {
	name    string
	oauth   *oauth2.Config
	http    *resty.Client
	hc      *http.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

func newClient(name string, cfg *oauth2.Config, apiBaseURL string, timeout time.Duration, log *slog.Logger) *client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log = log.With(slog.String("component", "oauth"), slog.String("provider", name))

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("provider circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			var rejected *rejectedError
			return err == nil || errors.As(err, &rejected)
		},
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(apiBaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &client{
		name:    name,
		oauth:   cfg,
		http:    httpClient,
		hc:      &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		timeout: timeout,
		logger:  log,
	}
}

// exchange trades an authorization code for an access token.
func (c *client) exchange(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrMissingCode
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.hc)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		token, err := c.oauth.Exchange(ctx, code)
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) && retrieveErr.Response != nil &&
				retrieveErr.Response.StatusCode < http.StatusInternalServerError {
				return nil, &rejectedError{status: retrieveErr.Response.StatusCode}
			}
			return nil, err
		}
		return token, nil
	})
	if err != nil {
		return "", c.fail(ctx, "token exchange", err)
	}

	token, ok := result.(*oauth2.Token)
	if !ok || token.AccessToken == "" {
		return "", c.fail(ctx, "token exchange", errors.New("empty access token"))
	}
	return token.AccessToken, nil
}

// getJSON performs an authenticated GET against the provider API and decodes
// the JSON body into out.
func (c *client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(accessToken).
			SetResult(out).
			Get(path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			if resp.StatusCode() < http.StatusInternalServerError {
				return nil, &rejectedError{status: resp.StatusCode()}
			}
			return nil, fmt.Errorf("provider returned status %d", resp.StatusCode())
		}
		return nil, nil
	})
	if err != nil {
		return c.fail(ctx, "GET "+path, err)
	}
	return nil
}

// fail logs the redacted cause and returns an ErrAuthProvider without it.
func (c *client) fail(ctx context.Context, step string, cause error) error {
	logger.FromContextOrDefault(ctx, c.logger).Warn("provider call failed",
		slog.String("provider", c.name),
		slog.String("step", step),
		slog.String("error", redact.Error(cause)))

	if errors.Is(cause, gobreaker.ErrOpenState) || errors.Is(cause, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s unavailable", ErrAuthProvider, c.name)
	}
	return fmt.Errorf("%w: %s %s failed", ErrAuthProvider, c.name, step)
}
