package fxclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/meridianpay/fx-payment-service/internal/models"
	"github.com/meridianpay/fx-payment-service/internal/telemetry"
)

const quotePath = "/twirp/payments.v1.FXService/GetQuote"

type quoteRequest struct {
	SourceCurrency string `json:"source_currency"`
	TargetCurrency string `json:"target_currency"`
}

type quoteResponse struct {
	ExchangeRate float64 `json:"exchange_rate"`
}

// Quote is the result of a successful rate lookup. LatencyMs is the
// wall-clock duration of the attempt that produced the rate, not the
// cumulative time across retries.
type Quote struct {
	Rate      float64
	LatencyMs int64
}

// Client fetches exchange rates from the FX service with bounded
// retries and linear backoff between attempts.
type Client struct {
	baseURL    string
	maxRetries int
	baseDelay  time.Duration
	client     *http.Client
	log        *zap.Logger
}

func New(baseURL string, timeout time.Duration, maxRetries int, baseDelay time.Duration, log *zap.Logger) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		baseURL:    baseURL,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

// GetQuote fetches the exchange rate for a currency pair. It issues up
// to maxRetries attempts, sleeping attempt×baseDelay between them (never
// after the last), and returns the first success or the failure of the
// final attempt.
func (c *Client) GetQuote(ctx context.Context, sourceCurrency, destCurrency string) (*Quote, error) {
	if sourceCurrency == "" || destCurrency == "" {
		return nil, fmt.Errorf("%w: source and destination currencies are required", models.ErrValidation)
	}

	body, err := json.Marshal(quoteRequest{
		SourceCurrency: sourceCurrency,
		TargetCurrency: destCurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling quote request: %v", ErrQuoteUnavailable, err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		quote, err := c.attempt(ctx, body)
		if err == nil {
			telemetry.FxAttempts.WithLabelValues("success").Inc()
			return quote, nil
		}
		telemetry.FxAttempts.WithLabelValues("failure").Inc()
		lastErr = err
		c.log.Warn("fx quote attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.maxRetries),
			zap.Error(err),
		)

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * c.baseDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrQuoteUnavailable, ctx.Err())
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, body []byte) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+quotePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrQuoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	latency := time.Since(start)
	telemetry.FxAttemptDuration.Observe(latency.Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fx service returned status %d", ErrQuoteUnavailable, resp.StatusCode)
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrQuoteUnavailable, err)
	}
	if decoded.ExchangeRate <= 0 {
		return nil, fmt.Errorf("%w: invalid exchange rate %g", ErrQuoteUnavailable, decoded.ExchangeRate)
	}

	return &Quote{Rate: decoded.ExchangeRate, LatencyMs: latency.Milliseconds()}, nil
}
