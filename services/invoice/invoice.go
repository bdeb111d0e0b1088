package invoice

import (
	"context"
	"fmt"
	"strings"

	invoiceRepo "okclinic/database/repository/invoice"
	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"
	"okclinic/utils/clock"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type InvoiceService interface {
	CreateInvoice(ctx context.Context, customerID string, req models.InvoiceRequest) (*models.Invoice, error)
	ListCustomerInvoices(ctx context.Context, customerID string) ([]models.Invoice, error)
	ListAllInvoices(ctx context.Context) ([]models.InvoiceResponse, error)
	PayInvoice(ctx context.Context, customerID, invoiceID string, req models.PaymentRequest) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req models.AdminInvoiceUpdateRequest) (*models.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

type DefaultInvoiceService struct {
	Repo  invoiceRepo.InvoiceRepository
	Users userRepo.UserRepository
	Clock clock.Clock
}

func NewInvoiceService(repo invoiceRepo.InvoiceRepository, users userRepo.UserRepository, c clock.Clock) *DefaultInvoiceService {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &DefaultInvoiceService{Repo: repo, Users: users, Clock: c}
}

// CreateInvoice issues a pending invoice. The invoice is not linked to the
// booking ledger; BookingID is informational.
func (s *DefaultInvoiceService) CreateInvoice(ctx context.Context, customerID string, req models.InvoiceRequest) (*models.Invoice, error) {
	if req.Amount == nil {
		return nil, apperr.Validation("Amount is required")
	}
	if *req.Amount < 0 {
		return nil, apperr.Validation("Amount cannot be negative")
	}
	now := s.Clock.Now()

	inv := &models.Invoice{
		CustomerID:    customerID,
		BookingID:     strings.TrimSpace(req.BookingID),
		PetName:       strings.TrimSpace(req.PetName),
		Services:      req.Services,
		Amount:        *req.Amount,
		Status:        models.InvoiceStatusPending,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Date:          req.Date,
		DueDate:       req.DueDate,
	}
	if inv.Services == nil {
		inv.Services = []string{}
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%d", now.Unix())
	}
	if inv.Date == "" {
		inv.Date = now.Format(dateLayout)
	}
	if err := s.Repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Invoice created",
		zap.String("invoiceID", inv.ID),
		zap.String("customerID", customerID),
		zap.Float64("amount", inv.Amount))
	return inv, nil
}

func (s *DefaultInvoiceService) ListCustomerInvoices(ctx context.Context, customerID string) ([]models.Invoice, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *DefaultInvoiceService) withCustomer(ctx context.Context, inv models.Invoice) models.InvoiceResponse {
	resp := models.InvoiceResponse{Invoice: inv}
	if s.Users == nil {
		return resp
	}
	if u, err := s.Users.GetByID(ctx, inv.CustomerID); err == nil {
		resp.Customer = &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return resp
}

func (s *DefaultInvoiceService) ListAllInvoices(ctx context.Context) ([]models.InvoiceResponse, error) {
	invoices, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, s.withCustomer(ctx, inv))
	}
	return out, nil
}

// PayInvoice marks one of the customer's own invoices paid today.
func (s *DefaultInvoiceService) PayInvoice(ctx context.Context, customerID, invoiceID string, req models.PaymentRequest) (*models.Invoice, error) {
	paid, err := s.Repo.Pay(ctx, invoiceID, customerID, strings.TrimSpace(req.PaymentMethod), s.Clock.Now().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Invoice paid", zap.String("invoiceID", invoiceID), zap.String("customerID", customerID))
	return paid, nil
}

// UpdateInvoice is the staff edit. Blank fields keep their stored value.
func (s *DefaultInvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req models.AdminInvoiceUpdateRequest) (*models.InvoiceResponse, error) {
	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if !models.ValidInvoiceStatus(req.Status) {
			return nil, apperr.Validation("status must be one of pending, paid, overdue")
		}
		inv.Status = req.Status
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, apperr.Validation("Amount cannot be negative")
		}
		inv.Amount = *req.Amount
	}
	if req.PaymentMethod != "" {
		inv.PaymentMethod = req.PaymentMethod
	}
	if req.PaidDate != "" {
		inv.PaidDate = req.PaidDate
	}
	if err := s.Repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	resp := s.withCustomer(ctx, *inv)
	return &resp, nil
}

func (s *DefaultInvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.Repo.Delete(ctx, invoiceID)
}
