package models

import "time"

// ReminderPayload describes one appointment reminder handed to the notifier.
type ReminderPayload struct {
	BookingID     string    `json:"bookingId"`
	CustomerID    string    `json:"customerId"`
	To            string    `json:"to"`
	PetName       string    `json:"petName"`
	AppointmentAt time.Time `json:"appointmentAt"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
}
