package tasks

import (
	"fmt"
	"time"

	"okclinic/models"
)

// ReminderTimeLayout renders appointment times in reminder bodies.
const ReminderTimeLayout = "Mon Jan 2, 2006 at 3:04 PM"

// ReminderSubject is the static subject line of appointment reminders.
func ReminderSubject(clinicName string) string {
	if clinicName == "" {
		return "Upcoming Appointment Reminder"
	}
	return "Upcoming Appointment Reminder - " + clinicName
}

// NewReminderPayload composes the reminder for booking b, addressed to to.
// An empty petName is rendered as "your pet".
func NewReminderPayload(b models.Booking, to, petName, clinicName string, loc *time.Location) models.ReminderPayload {
	if loc == nil {
		loc = time.UTC
	}
	name := petName
	if name == "" {
		name = "your pet"
	}
	when := b.AppointmentAt.In(loc).Format(ReminderTimeLayout)
	return models.ReminderPayload{
		BookingID:     b.ID,
		CustomerID:    b.CustomerID,
		To:            to,
		PetName:       petName,
		AppointmentAt: b.AppointmentAt,
		Subject:       ReminderSubject(clinicName),
		Body:          fmt.Sprintf("This is a reminder that %s has an appointment on %s.", name, when),
	}
}
