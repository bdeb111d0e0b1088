package bookingRepo

import (
	"context"
	"time"

	"okclinic/models"
)

// BookingRepository is the booking ledger.
type BookingRepository interface {
	// Create inserts a new booking. A second active booking for the same
	// (date, time) slot fails with apperr.ErrConflict.
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindOne returns the first booking matching filter, or nil when none does.
	FindOne(ctx context.Context, filter Filter) (*models.Booking, error)
	Find(ctx context.Context, filter Filter) ([]models.Booking, error)
	// UpdateStatus moves a booking to status. Reviving a cancelled booking into
	// an occupied slot fails with apperr.ErrConflict.
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	// MarkReminderSent sets the reminder flag; it is never cleared.
	MarkReminderSent(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Filter selects bookings. Zero-valued fields do not constrain the result.
type Filter struct {
	CustomerID      string
	Date            string
	Time            string
	Status          string
	ExcludeStatus   string
	ReminderNotSent bool
	From            time.Time // appointment timestamp lower bound, inclusive
	To              time.Time // appointment timestamp upper bound, inclusive
}

// SlotFilter matches any booking holding the (date, time) slot.
func SlotFilter(date, clock string) Filter {
	return Filter{Date: date, Time: clock, ExcludeStatus: models.BookingStatusCancelled}
}

// DueReminderFilter matches upcoming bookings that have not been reminded and
// whose appointment falls within [from, to].
func DueReminderFilter(from, to time.Time) Filter {
	return Filter{
		Status:          models.BookingStatusUpcoming,
		ReminderNotSent: true,
		From:            from,
		To:              to,
	}
}

// Match reports whether b satisfies the filter.
func (f Filter) Match(b *models.Booking) bool {
	if f.CustomerID != "" && b.CustomerID != f.CustomerID {
		return false
	}
	if f.Date != "" && b.Date != f.Date {
		return false
	}
	if f.Time != "" && b.Time != f.Time {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.ExcludeStatus != "" && b.Status == f.ExcludeStatus {
		return false
	}
	if f.ReminderNotSent && b.ReminderSent {
		return false
	}
	if !f.From.IsZero() && b.AppointmentAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && b.AppointmentAt.After(f.To) {
		return false
	}
	return true
}
