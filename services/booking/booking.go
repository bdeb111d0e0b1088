package booking

import (
	"context"

	bookingRepo "okclinic/database/repository/booking"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

// CreateBooking validates and commits a new appointment for customerID.
// Nothing is persisted unless every check passes.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, req models.BookingRequest) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	err := validateRequest(&req)
	if err != nil {
		return nil, err
	}
	req.Date, req.Time, err = CanonicalSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	at, err := AppointmentTime(req.Date, req.Time, s.Location)
	if err != nil {
		return nil, err
	}

	pet, err := s.Pets.GetByIDAndOwner(ctx, req.Pet, customerID)
	if err != nil {
		if apperr.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Ownership("Pet not found or does not belong to user")
		}
		logger.Error("CreateBooking: pet lookup failed", zap.String("petID", req.Pet), zap.Error(err))
		return nil, apperr.Wrap(err, "pet lookup")
	}

	held, err := s.Bookings.FindOne(ctx, bookingRepo.SlotFilter(req.Date, req.Time))
	if err != nil {
		logger.Error("CreateBooking: slot check failed", zap.String("date", req.Date), zap.String("time", req.Time), zap.Error(err))
		return nil, apperr.Wrap(err, "slot check")
	}
	if held != nil {
		return nil, apperr.Conflict("Slot already booked")
	}

	services := snapshotServices(req.Services)
	total, deposit := CalculateTotals(services)

	booking := &models.Booking{
		CustomerID:    customerID,
		PetID:         pet.ID,
		Date:          req.Date,
		Time:          req.Time,
		AppointmentAt: at,
		Services:      services,
		Total:         total,
		DepositPaid:   deposit,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Status:        models.BookingStatusUpcoming,
		ReminderSent:  false,
	}
	// The storage layer guards the slot again, closing the window between
	// the check above and this insert.
	if err := s.Bookings.Create(ctx, booking); err != nil {
		if !apperr.Is(err, apperr.ErrConflict) {
			logger.Error("CreateBooking: insert failed", zap.Error(err))
		}
		return nil, err
	}

	logger.Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("customerID", customerID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.Float64("total", total))

	return &models.BookingResponse{Booking: *booking, Pet: pet.Summary()}, nil
}
