package booking

import (
	"context"

	bookingRepo "okclinic/database/repository/booking"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

// ListCustomerBookings returns the customer's bookings with pets resolved.
func (s *DefaultBookingService) ListCustomerBookings(ctx context.Context, customerID string) ([]models.BookingResponse, error) {
	bookings, err := s.Bookings.Find(ctx, bookingRepo.Filter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, bookings, false), nil
}

// ListAllBookings returns every booking with pet and customer resolved.
func (s *DefaultBookingService) ListAllBookings(ctx context.Context) ([]models.BookingResponse, error) {
	bookings, err := s.Bookings.Find(ctx, bookingRepo.Filter{})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, bookings, true), nil
}

// resolve embeds display records. Lookups that fail leave the field empty
// rather than failing the listing.
func (s *DefaultBookingService) resolve(ctx context.Context, bookings []models.Booking, withCustomer bool) []models.BookingResponse {
	pets := map[string]*models.PetSummary{}
	customers := map[string]*models.UserSummary{}

	out := make([]models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp := models.BookingResponse{Booking: b}

		summary, seen := pets[b.PetID]
		if !seen {
			if pet, err := s.Pets.GetByID(ctx, b.PetID); err == nil {
				summary = pet.Summary()
			}
			pets[b.PetID] = summary
		}
		resp.Pet = summary

		if withCustomer && s.Users != nil {
			customer, seen := customers[b.CustomerID]
			if !seen {
				if u, err := s.Users.GetByID(ctx, b.CustomerID); err == nil {
					customer = &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
				}
				customers[b.CustomerID] = customer
			}
			resp.Customer = customer
		}
		out = append(out, resp)
	}
	return out
}

// UpdateStatus moves a booking through its lifecycle on behalf of staff.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, apperr.Validation("status must be one of upcoming, completed, cancelled")
	}
	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Booking status updated", zap.String("bookingID", bookingID), zap.String("status", status))
	return updated, nil
}

// CancelBooking lets a customer cancel one of their own upcoming bookings.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error) {
	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing.CustomerID != customerID {
		return nil, apperr.NotFound("Booking not found")
	}
	if existing.Status != models.BookingStatusUpcoming {
		return nil, apperr.Validation("only upcoming bookings can be cancelled")
	}
	return s.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled)
}

// DeleteBooking removes a booking from the ledger.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	utils.GetLogger().Info("Booking deleted", zap.String("bookingID", bookingID))
	return nil
}
