package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/meridianpay/fx-payment-service/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentStore is an in-memory payment collection safe for concurrent
// use. One mutex guards the whole map; operations hold it only for the
// duration of the map access.
type PaymentStore struct {
	mu       sync.Mutex
	payments map[string]paymentRecord
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		payments: make(map[string]paymentRecord),
	}
}

// Save inserts the payment, overwriting any record already stored under
// its identifier.
func (s *PaymentStore) Save(p *models.Payment) error {
	rec := toRecord(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = rec
	return nil
}

// Update replaces an existing record. The identifier must already be
// present.
func (s *PaymentStore) Update(p *models.Payment) error {
	rec := toRecord(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, p.ID)
	}
	s.payments[p.ID] = rec
	return nil
}

// Get returns a copy of the record stored under id.
func (s *PaymentStore) Get(id string) (*models.Payment, error) {
	s.mu.Lock()
	rec, ok := s.payments[id]
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}
	return fromRecord(rec), nil
}
