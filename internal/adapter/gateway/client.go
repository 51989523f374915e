package gateway

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

	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

var errUnavailable = domainErrors.New(domainErrors.ErrUnavailable, "payment gateway temporarily unavailable")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Unwrap lets callers treat rate limiting as an unavailable gateway.
func (e TooManyRequestsError) Unwrap() error {
	return errUnavailable
}

// Client opens payment orders at the gateway.
type Client interface {
	CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (string, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, keyID, keySecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("gateway credentials must be provided")
	}
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger.With(slog.String("component", "gateway")),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateOrder registers a payment order and returns the gateway reference.
func (c *HTTPClient) CreateOrder(ctx context.Context, in model.GatewayOrderRequest) (string, error) {
	if in.AmountMinor <= 0 {
		return "", domainErrors.New(domainErrors.ErrInvalidInput, "amount must be positive")
	}

	payload, err := json.Marshal(createOrderRequest{
		Amount:   in.AmountMinor,
		Currency: in.Currency,
		Receipt:  in.Receipt,
	})
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		c.logger.Warn("gateway request failed", slog.String("receipt", in.Receipt), slog.Any("error", err))
		return "", fmt.Errorf("%w: %w", errUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data createOrderResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return "", fmt.Errorf("decode gateway response: %w", err)
		}
		if data.ID == "" {
			return "", fmt.Errorf("gateway response has no order id")
		}
		return data.ID, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logFailure(resp, in.Receipt)
		return "", fmt.Errorf("%w: %s", errUnavailable, resp.Status)
	default:
		c.logFailure(resp, in.Receipt)
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func (c *HTTPClient) logFailure(resp *http.Response, receipt string) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	c.logger.Error("gateway request rejected",
		slog.Int("status", resp.StatusCode),
		slog.String("receipt", receipt),
		slog.String("body", string(body)),
	)
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
