package memory

import (
	"context"
	"sort"
	"time"

	bookingRepo "okclinic/database/repository/booking"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// BookingStore is an in-memory booking ledger. Slot exclusivity is enforced
// under the store lock, so concurrent creates for one slot cannot both succeed.
type BookingStore struct {
	s *store[models.Booking]

	// FailMarkReminder, when set, makes MarkReminderSent fail for the given booking IDs.
	FailMarkReminder map[string]error
}

var _ bookingRepo.BookingRepository = (*BookingStore)(nil)

func NewBookingStore() *BookingStore {
	return &BookingStore{s: newStore[models.Booking]()}
}

func (b *BookingStore) slotHeldLocked(date, clock, exceptID string) bool {
	f := bookingRepo.SlotFilter(date, clock)
	for id, existing := range b.s.items {
		if id != exceptID && f.Match(&existing) {
			return true
		}
	}
	return false
}

func (b *BookingStore) Create(_ context.Context, booking *models.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if booking.Status != models.BookingStatusCancelled && b.slotHeldLocked(booking.Date, booking.Time, "") {
		return apperr.Conflict("Slot already booked")
	}
	booking.ID = newID(booking.ID)
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	b.s.put(booking.ID, cloneBooking(*booking))
	return nil
}

func (b *BookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	v, ok := b.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Booking not found")
	}
	out := cloneBooking(v)
	return &out, nil
}

func (b *BookingStore) FindOne(ctx context.Context, filter bookingRepo.Filter) (*models.Booking, error) {
	found, err := b.Find(ctx, filter)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func (b *BookingStore) Find(_ context.Context, filter bookingRepo.Filter) ([]models.Booking, error) {
	out := b.s.values(func(v *models.Booking) bool { return filter.Match(v) })
	for i := range out {
		out[i] = cloneBooking(out[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppointmentAt.Before(out[j].AppointmentAt) })
	return out, nil
}

func (b *BookingStore) UpdateStatus(_ context.Context, id, status string) (*models.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	v, ok := b.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Booking not found")
	}
	if status != models.BookingStatusCancelled && v.Status == models.BookingStatusCancelled &&
		b.slotHeldLocked(v.Date, v.Time, id) {
		return nil, apperr.Conflict("Slot already booked")
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	b.s.put(id, v)
	out := cloneBooking(v)
	return &out, nil
}

func (b *BookingStore) MarkReminderSent(_ context.Context, id string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if err, ok := b.FailMarkReminder[id]; ok {
		return err
	}
	v, ok := b.s.items[id]
	if !ok {
		return apperr.NotFound("Booking not found")
	}
	v.ReminderSent = true
	v.UpdatedAt = time.Now()
	b.s.put(id, v)
	return nil
}

func (b *BookingStore) Delete(_ context.Context, id string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if !b.s.remove(id) {
		return apperr.NotFound("Booking not found")
	}
	return nil
}

// Count returns the number of stored bookings.
func (b *BookingStore) Count() int {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return len(b.s.items)
}

func cloneBooking(b models.Booking) models.Booking {
	if b.Services != nil {
		services := make([]models.ServiceSnapshot, len(b.Services))
		copy(services, b.Services)
		b.Services = services
	}
	return b
}
