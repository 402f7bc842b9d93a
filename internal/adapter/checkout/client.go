package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// ErrSessionNotFound indicates the processor doesn't know the session.
var ErrSessionNotFound = errors.New("checkout session not found")

// TooManyRequestsError represents rate limiting signal from the processor.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// CreatedSession is the processor's answer to a session creation request.
type CreatedSession struct {
	ID          string
	RedirectURL string
}

// Client exposes operations against the checkout processor.
type Client interface {
	CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*CreatedSession, error)
	FetchSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// createRequest mirrors the JSON payload sent to the processor.
type createRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// createResponse mirrors the JSON payload of a created session.
type createResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

// sessionResponse mirrors the JSON payload of a session lookup.
type sessionResponse struct {
	ID         string           `json:"id"`
	Status     string           `json:"status"`
	ChargeRef  string           `json:"charge_ref,omitempty"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewHTTPClient creates a checkout client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse checkout url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("checkout url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession opens a new checkout session at the processor. Each call
// carries a fresh idempotency key so processor-side retries never open a
// second session.
func (c *HTTPClient) CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*CreatedSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/sessions")

	payload, err := json.Marshal(createRequest{Amount: amount, Description: description})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data createResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &CreatedSession{ID: data.ID, RedirectURL: data.RedirectURL}, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session create failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("checkout error: %s", resp.Status)
	}
}

// FetchSession queries the processor for the session state.
func (c *HTTPClient) FetchSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/sessions/", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sessionResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.CheckoutSession{
			ID:         data.ID,
			Status:     model.CheckoutSessionStatus(data.Status),
			ChargeRef:  data.ChargeRef,
			AmountPaid: data.AmountPaid,
			CreatedAt:  data.CreatedAt,
		}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrSessionNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("checkout error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
