package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
)

// HTTPClient implements Provider via a FaucetPay-style send API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload expected by the payout API.
type request struct {
	APIKey   string `json:"api_key"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	To       string `json:"to"`
}

// response mirrors the JSON payload returned by the payout API.
type response struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	PayoutID string `json:"payout_id"`
}

// NewHTTPClient creates an HTTP payout client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payout url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payout url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Submit posts the withdrawal to the payout platform and returns the payout
// reference assigned by the provider.
func (c *HTTPClient) Submit(ctx context.Context, w model.Withdrawal) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v1/send")

	payload, err := json.Marshal(request{
		APIKey:   c.apiKey,
		Amount:   strconv.FormatFloat(w.Amount, 'f', -1, 64),
		Currency: w.Coin,
		To:       w.Email,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainErrors.ErrPayoutUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		if data.PayoutID == "" {
			return "", fmt.Errorf("payout rejected: %s", data.Message)
		}
		return data.PayoutID, nil
	case http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusBadGateway:
		return "", domainErrors.ErrPayoutUnavailable
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payout request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("payout error: %s", resp.Status)
	}
}
