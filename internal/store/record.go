package store

import (
	"time"

	"github.com/meridianpay/fx-payment-service/internal/models"
)

// paymentRecord is the flat storage-side shape of a payment. Keeping it
// separate from models.Payment means the map never shares pointers with
// callers, so a record read under the lock is immune to later mutation
// of the domain object.
type paymentRecord struct {
	id                  string
	sender              string
	receiver            string
	amount              float64
	sourceCurrency      string
	destinationCurrency string
	status              string
	payoutAmount        *float64
	fxRate              *float64
	errorMessage        *string
	fxLatencyMs         *int64
	fxError             *string
	createdAt           time.Time
	updatedAt           time.Time
	payoutCurrency      string
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func toRecord(p *models.Payment) paymentRecord {
	return paymentRecord{
		id:                  p.ID,
		sender:              p.Sender,
		receiver:            p.Receiver,
		amount:              p.Amount,
		sourceCurrency:      p.SourceCurrency,
		destinationCurrency: p.DestinationCurrency,
		status:              string(p.Status),
		payoutAmount:        clonePtr(p.PayoutAmount),
		fxRate:              clonePtr(p.FxRate),
		errorMessage:        clonePtr(p.ErrorMessage),
		fxLatencyMs:         clonePtr(p.Diagnostics.FxLatencyMs),
		fxError:             clonePtr(p.Diagnostics.FxError),
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		payoutCurrency:      p.PayoutCurrency,
	}
}

func fromRecord(rec paymentRecord) *models.Payment {
	return &models.Payment{
		ID:                  rec.id,
		Sender:              rec.sender,
		Receiver:            rec.receiver,
		Amount:              rec.amount,
		SourceCurrency:      rec.sourceCurrency,
		DestinationCurrency: rec.destinationCurrency,
		Status:              models.PaymentStatus(rec.status),
		PayoutAmount:        clonePtr(rec.payoutAmount),
		FxRate:              clonePtr(rec.fxRate),
		ErrorMessage:        clonePtr(rec.errorMessage),
		Diagnostics: models.Diagnostics{
			FxLatencyMs: clonePtr(rec.fxLatencyMs),
			FxError:     clonePtr(rec.fxError),
		},
		CreatedAt:      rec.createdAt,
		UpdatedAt:      rec.updatedAt,
		PayoutCurrency: rec.payoutCurrency,
	}
}
