package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridianpay/fx-payment-service/internal/interfaces"
	"github.com/meridianpay/fx-payment-service/internal/models"
	"github.com/meridianpay/fx-payment-service/internal/telemetry"
)

// Orchestrator drives a payment from PENDING to a terminal state. It
// persists the record before the FX call and always persists the
// outcome, so a payment that started processing is never left PENDING.
type Orchestrator struct {
	store interfaces.PaymentStore
	fx    interfaces.QuoteClient
	log   *zap.Logger
}

func NewOrchestrator(store interfaces.PaymentStore, fx interfaces.QuoteClient, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store: store,
		fx:    fx,
		log:   log,
	}
}

// CreatePayment processes a creation request end to end. On upstream
// failure the FAILED record is persisted and the quote error is
// returned; the record stays retrievable through GetPayment.
func (o *Orchestrator) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	now := time.Now().UTC()
	payoutCurrency := models.NormalizeCurrency(req.DestinationCurrency)

	payment := &models.Payment{
		ID:                  uuid.NewString(),
		Sender:              strings.TrimSpace(req.Sender),
		Receiver:            strings.TrimSpace(req.Receiver),
		Amount:              req.Amount,
		SourceCurrency:      models.NormalizeCurrency(req.SourceCurrency),
		DestinationCurrency: payoutCurrency,
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
		PayoutCurrency:      payoutCurrency,
	}

	// The PENDING record must exist before any external call.
	if err := o.store.Save(payment); err != nil {
		return nil, fmt.Errorf("saving pending payment: %w", err)
	}

	o.log.Info("Processing payment",
		zap.String("payment_id", payment.ID),
		zap.Float64("amount", payment.Amount),
		zap.String("source_currency", payment.SourceCurrency),
		zap.String("destination_currency", payment.DestinationCurrency),
	)

	quote, err := o.fx.GetQuote(ctx, payment.SourceCurrency, payment.DestinationCurrency)
	if err != nil {
		return nil, o.markFailed(payment, err)
	}

	payout := payment.Amount * quote.Rate
	payment.Diagnostics.FxLatencyMs = &quote.LatencyMs
	payment.FxRate = &quote.Rate
	payment.PayoutAmount = &payout
	payment.Status = models.StatusSucceeded
	payment.UpdatedAt = time.Now().UTC()

	if err := o.store.Update(payment); err != nil {
		return nil, o.consistencyBreach(payment, err)
	}

	telemetry.PaymentsProcessed.WithLabelValues(string(models.StatusSucceeded)).Inc()
	o.log.Info("Payment succeeded",
		zap.String("payment_id", payment.ID),
		zap.Float64("fx_rate", quote.Rate),
		zap.Float64("payout_amount", payout),
		zap.Int64("fx_latency_ms", quote.LatencyMs),
	)
	return payment, nil
}

// GetPayment returns the current record for an identifier.
func (o *Orchestrator) GetPayment(id string) (*models.Payment, error) {
	return o.store.Get(id)
}

// markFailed persists the terminal FAILED record and hands the quote
// failure back to the caller.
func (o *Orchestrator) markFailed(payment *models.Payment, cause error) error {
	msg := cause.Error()
	payment.Diagnostics.FxError = &msg
	payment.ErrorMessage = &msg
	payment.Status = models.StatusFailed
	payment.UpdatedAt = time.Now().UTC()

	if err := o.store.Update(payment); err != nil {
		return o.consistencyBreach(payment, err)
	}

	telemetry.PaymentsProcessed.WithLabelValues(string(models.StatusFailed)).Inc()
	o.log.Warn("Payment failed",
		zap.String("payment_id", payment.ID),
		zap.String("cause", msg),
	)
	return cause
}

// consistencyBreach logs a store-contract violation. This is a bug in
// the process, not an upstream problem, so it is logged at error level
// with its own message.
func (o *Orchestrator) consistencyBreach(payment *models.Payment, err error) error {
	o.log.Error("Payment record vanished during terminal update",
		zap.String("payment_id", payment.ID),
		zap.Error(err),
	)
	return fmt.Errorf("updating payment %s: %w", payment.ID, err)
}
