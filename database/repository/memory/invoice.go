package memory

import (
	"context"
	"sort"
	"time"

	invoiceRepo "okclinic/database/repository/invoice"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// InvoiceStore is an in-memory invoice ledger.
type InvoiceStore struct {
	s *store[models.Invoice]
}

var _ invoiceRepo.InvoiceRepository = (*InvoiceStore)(nil)

func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{s: newStore[models.Invoice]()}
}

func newestInvoicesFirst(items []models.Invoice) []models.Invoice {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (s *InvoiceStore) Create(_ context.Context, inv *models.Invoice) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	inv.ID = newID(inv.ID)
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	if inv.Services == nil {
		inv.Services = []string{}
	}
	s.s.put(inv.ID, *inv)
	return nil
}

func (s *InvoiceStore) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	v, ok := s.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Invoice not found")
	}
	return &v, nil
}

func (s *InvoiceStore) ListByCustomer(_ context.Context, customerID string) ([]models.Invoice, error) {
	return newestInvoicesFirst(s.s.values(func(v *models.Invoice) bool { return v.CustomerID == customerID })), nil
}

func (s *InvoiceStore) ListAll(_ context.Context) ([]models.Invoice, error) {
	return newestInvoicesFirst(s.s.values(nil)), nil
}

func (s *InvoiceStore) Pay(_ context.Context, id, customerID, paymentMethod, paidDate string) (*models.Invoice, error) {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	v, ok := s.s.items[id]
	if !ok || v.CustomerID != customerID {
		return nil, apperr.NotFound("Invoice not found")
	}
	v.Status = models.InvoiceStatusPaid
	v.PaymentMethod = paymentMethod
	v.PaidDate = paidDate
	v.UpdatedAt = time.Now()
	s.s.put(id, v)
	return &v, nil
}

func (s *InvoiceStore) Update(_ context.Context, inv *models.Invoice) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	existing, ok := s.s.items[inv.ID]
	if !ok {
		return apperr.NotFound("Invoice not found")
	}
	existing.Status = inv.Status
	existing.Amount = inv.Amount
	existing.PaymentMethod = inv.PaymentMethod
	existing.PaidDate = inv.PaidDate
	existing.UpdatedAt = time.Now()
	s.s.put(inv.ID, existing)
	*inv = existing
	return nil
}

func (s *InvoiceStore) Delete(_ context.Context, id string) error {
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	if !s.s.remove(id) {
		return apperr.NotFound("Invoice not found")
	}
	return nil
}
