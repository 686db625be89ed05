package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusSucceeded PaymentStatus = "SUCCEEDED"
	StatusFailed    PaymentStatus = "FAILED"
)

// ErrValidation marks malformed input from the caller. Never retried,
// never persisted.
var ErrValidation = errors.New("invalid request")

// Diagnostics carries timing/error context about the FX call. Not used
// for control flow.
type Diagnostics struct {
	FxLatencyMs *int64  `json:"fx_latency_ms"`
	FxError     *string `json:"fx_error"`
}

type Payment struct {
	ID                  string        `json:"id"`
	Sender              string        `json:"sender"`
	Receiver            string        `json:"receiver"`
	Amount              float64       `json:"amount"`
	SourceCurrency      string        `json:"source_currency"`
	DestinationCurrency string        `json:"destination_currency"`
	Status              PaymentStatus `json:"status"`
	PayoutAmount        *float64      `json:"payout_amount"`
	FxRate              *float64      `json:"fx_rate"`
	ErrorMessage        *string       `json:"error_message"`
	Diagnostics         Diagnostics   `json:"diagnostics"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	PayoutCurrency      string        `json:"payout_currency"`
}

type CreatePaymentRequest struct {
	Sender              string  `json:"sender"`
	Receiver            string  `json:"receiver"`
	Amount              float64 `json:"amount"`
	SourceCurrency      string  `json:"source_currency"`
	DestinationCurrency string  `json:"destination_currency"`
}

// Validate enforces the field rules the API contract promises: all text
// fields non-empty after trimming, amount strictly positive.
func (r *CreatePaymentRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"sender", r.Sender},
		{"receiver", r.Receiver},
		{"source_currency", r.SourceCurrency},
		{"destination_currency", r.DestinationCurrency},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrValidation, f.name)
		}
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

// NormalizeCurrency trims surrounding whitespace and uppercases a
// currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
