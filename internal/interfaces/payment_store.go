package interfaces

import (
	"context"

	"github.com/meridianpay/fx-payment-service/internal/fxclient"
	"github.com/meridianpay/fx-payment-service/internal/models"
)

// PaymentStore defines the contract for keyed payment persistence.
type PaymentStore interface {
	Save(p *models.Payment) error
	Update(p *models.Payment) error
	Get(id string) (*models.Payment, error)
}

// QuoteClient defines the contract for fetching an exchange rate for a
// currency pair.
type QuoteClient interface {
	GetQuote(ctx context.Context, sourceCurrency, destCurrency string) (*fxclient.Quote, error)
}
