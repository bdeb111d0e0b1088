package models

import "time"

// Booking lifecycle states.
const (
	BookingStatusUpcoming  = "upcoming"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is one of the booking lifecycle states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusUpcoming, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// ServiceSnapshot is a copy of a catalog entry taken when a booking is made.
// Later catalog edits never change it.
type ServiceSnapshot struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
}

// Booking is the ledger entry for one appointment.
type Booking struct {
	ID            string            `bson:"id" json:"id"`
	CustomerID    string            `bson:"customer" json:"customerId"`
	PetID         string            `bson:"pet" json:"petId"`
	Date          string            `bson:"date" json:"date"` // YYYY-MM-DD
	Time          string            `bson:"time" json:"time"` // HH:MM
	AppointmentAt time.Time         `bson:"appointmentDateTime" json:"appointmentDateTime"`
	Services      []ServiceSnapshot `bson:"services" json:"services"`
	Total         float64           `bson:"total" json:"total"`
	DepositPaid   float64           `bson:"depositPaid" json:"depositPaid"`
	PaymentMethod string            `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Notes         string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string            `bson:"status" json:"status"`
	ReminderSent  bool              `bson:"reminderSent" json:"reminderSent"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the wire payload for creating a booking.
type BookingRequest struct {
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Pet           string            `json:"pet"`
	Services      []ServiceSnapshot `json:"services"`
	PaymentMethod string            `json:"paymentMethod"`
	Notes         string            `json:"notes"`
}

// BookingStatusUpdate is the admin payload for moving a booking through its lifecycle.
type BookingStatusUpdate struct {
	Status string `json:"status"`
}

// BookingResponse is a booking with its pet (and, for staff views, its customer) resolved.
type BookingResponse struct {
	Booking  `bson:",inline"`
	Pet      *PetSummary  `json:"pet,omitempty"`
	Customer *UserSummary `json:"customer,omitempty"`
}
