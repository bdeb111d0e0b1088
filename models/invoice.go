package models

import "time"

// Invoice payment states.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// ValidInvoiceStatus reports whether s is a known invoice state.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice is a billing record created by the customer after a booking decision.
// It is not transactionally linked to the booking ledger.
type Invoice struct {
	ID            string    `bson:"id" json:"id"`
	CustomerID    string    `bson:"customer" json:"customerId"`
	BookingID     string    `bson:"booking,omitempty" json:"bookingId,omitempty"`
	PetName       string    `bson:"petName,omitempty" json:"petName,omitempty"`
	Services      []string  `bson:"services" json:"services"`
	Amount        float64   `bson:"amount" json:"amount"`
	Status        string    `bson:"status" json:"status"`
	PaymentMethod string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	InvoiceNumber string    `bson:"invoiceNumber,omitempty" json:"invoiceNumber,omitempty"`
	Date          string    `bson:"date,omitempty" json:"date,omitempty"`       // issued, YYYY-MM-DD
	DueDate       string    `bson:"dueDate,omitempty" json:"dueDate,omitempty"` // YYYY-MM-DD
	PaidDate      string    `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// InvoiceRequest is the customer payload for issuing an invoice.
type InvoiceRequest struct {
	BookingID     string   `json:"booking"`
	PetName       string   `json:"petName"`
	Services      []string `json:"services"`
	Amount        *float64 `json:"amount"`
	InvoiceNumber string   `json:"invoiceNumber"`
	Date          string   `json:"date"`
	DueDate       string   `json:"dueDate"`
}

// PaymentRequest marks an invoice as paid.
type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// AdminInvoiceUpdateRequest is the staff payload for editing an invoice.
type AdminInvoiceUpdateRequest struct {
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"paymentMethod"`
	PaidDate      string   `json:"paidDate"`
}

// InvoiceResponse is an invoice with its customer resolved, used by staff views.
type InvoiceResponse struct {
	Invoice  `bson:",inline"`
	Customer *UserSummary `json:"customer,omitempty"`
}
