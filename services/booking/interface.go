package booking

import (
	"context"
	"time"

	bookingRepo "okclinic/database/repository/booking"
	petRepo "okclinic/database/repository/pet"
	userRepo "okclinic/database/repository/user"
	"okclinic/models"
)

// BookingService owns the booking ledger's write path.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, req models.BookingRequest) (*models.BookingResponse, error)
	ListCustomerBookings(ctx context.Context, customerID string) ([]models.BookingResponse, error)
	ListAllBookings(ctx context.Context) ([]models.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)
	CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Pets     petRepo.PetRepository
	Users    userRepo.UserRepository
	// Location is the clinic timezone slots are expressed in.
	Location *time.Location
}

func NewBookingService(bookings bookingRepo.BookingRepository, pets petRepo.PetRepository, users userRepo.UserRepository, loc *time.Location) *DefaultBookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultBookingService{Bookings: bookings, Pets: pets, Users: users, Location: loc}
}
