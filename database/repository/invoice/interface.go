package invoiceRepo

import (
	"context"

	"okclinic/models"
)

// InvoiceRepository is the invoice ledger.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	// ListByCustomer and ListAll return invoices newest issue date first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error)
	ListAll(ctx context.Context) ([]models.Invoice, error)
	// Pay marks the customer's invoice paid. Invoices owned by someone else are not found.
	Pay(ctx context.Context, id, customerID, paymentMethod, paidDate string) (*models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id string) error
}
