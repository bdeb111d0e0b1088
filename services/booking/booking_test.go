package booking

import (
	"context"
	"testing"
	"time"

	"okclinic/database/repository/memory"
	"okclinic/models"
	"okclinic/utils/apperr"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingServiceSuite struct {
	suite.Suite
	ctx      context.Context
	bookings *memory.BookingStore
	pets     *memory.PetStore
	users    *memory.UserStore
	svc      *DefaultBookingService

	owner  *models.User
	stray  *models.User
	rex    *models.Pet
	others *models.Pet
}

func TestBookingServiceSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func (s *BookingServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.bookings = memory.NewBookingStore()
	s.pets = memory.NewPetStore()
	s.users = memory.NewUserStore()
	s.svc = NewBookingService(s.bookings, s.pets, s.users, time.UTC)

	s.owner = &models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleCustomer}
	s.stray = &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleCustomer}
	s.Require().NoError(s.users.Create(s.ctx, s.owner))
	s.Require().NoError(s.users.Create(s.ctx, s.stray))

	s.rex = &models.Pet{OwnerID: s.owner.ID, Name: "Rex", Species: "dog"}
	s.others = &models.Pet{OwnerID: s.stray.ID, Name: "Tom", Species: "cat"}
	s.Require().NoError(s.pets.Create(s.ctx, s.rex))
	s.Require().NoError(s.pets.Create(s.ctx, s.others))
}

func (s *BookingServiceSuite) request() models.BookingRequest {
	return models.BookingRequest{
		Date: "2024-06-01",
		Time: "10:00",
		Pet:  s.rex.ID,
		Services: []models.ServiceSnapshot{
			{Name: "Exam", Price: 75, Duration: 30},
			{Name: "Vaccine", Price: 45, Duration: 15},
		},
		Notes: "first visit",
	}
}

func (s *BookingServiceSuite) TestCreateBookingComputesTotals() {
	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	s.Equal(120.0, resp.Total)
	s.Equal(60.0, resp.DepositPaid)
	s.Equal(models.BookingStatusUpcoming, resp.Status)
	s.False(resp.ReminderSent)
	s.Equal(s.owner.ID, resp.CustomerID)
	s.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), resp.AppointmentAt)
	s.Require().NotNil(resp.Pet)
	s.Equal("Rex", resp.Pet.Name)

	stored, err := s.bookings.GetByID(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Len(stored.Services, 2)
}

func (s *BookingServiceSuite) TestCreateBookingWithoutServices() {
	req := s.request()
	req.Services = nil

	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.Require().NoError(err)
	s.Zero(resp.Total)
	s.Zero(resp.DepositPaid)
	s.NotNil(resp.Services)
}

func (s *BookingServiceSuite) TestCreateBookingUsesClinicTimezone() {
	loc := time.FixedZone("clinic", 3*60*60)
	s.svc.Location = loc

	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)
	s.True(resp.AppointmentAt.Equal(time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)))
}

func (s *BookingServiceSuite) TestSlotConflict() {
	_, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	_, err = s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.True(apperr.Is(err, apperr.ErrConflict))
	s.Equal("Slot already booked", apperr.Message(err))
	s.Equal(1, s.bookings.Count())
}

func (s *BookingServiceSuite) TestUnpaddedTimeHitsSameSlot() {
	req := s.request()
	req.Time = "09:30"
	_, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.Require().NoError(err)

	req.Time = "9:30"
	_, err = s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.True(apperr.Is(err, apperr.ErrConflict), "got %v", err)
	s.Equal(1, s.bookings.Count())
}

func (s *BookingServiceSuite) TestStoresCanonicalSlot() {
	req := s.request()
	req.Time = "9:05"
	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.Require().NoError(err)
	s.Equal("09:05", resp.Time)
	s.Equal("2024-06-01", resp.Date)

	stored, err := s.bookings.GetByID(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal("09:05", stored.Time)
}

func (s *BookingServiceSuite) TestPaymentMethodIsRecorded() {
	req := s.request()
	req.PaymentMethod = "card"
	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.Require().NoError(err)

	stored, err := s.bookings.GetByID(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal("card", stored.PaymentMethod)
}

func (s *BookingServiceSuite) TestCancelledSlotCanBeRebooked() {
	first, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	_, err = s.svc.CancelBooking(s.ctx, s.owner.ID, first.ID)
	s.Require().NoError(err)

	_, err = s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.NoError(err)
}

func (s *BookingServiceSuite) TestForeignPetIsOwnershipErrorAndPersistsNothing() {
	req := s.request()
	req.Pet = s.others.ID

	_, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.True(apperr.Is(err, apperr.ErrOwnership))
	s.Equal("Pet not found or does not belong to user", apperr.Message(err))
	s.Zero(s.bookings.Count())

	req.Pet = "missing"
	_, err = s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.True(apperr.Is(err, apperr.ErrOwnership))
	s.Zero(s.bookings.Count())
}

func (s *BookingServiceSuite) TestValidation() {
	cases := map[string]func(r *models.BookingRequest){
		"missing date":   func(r *models.BookingRequest) { r.Date = "" },
		"missing time":   func(r *models.BookingRequest) { r.Time = " " },
		"missing pet":    func(r *models.BookingRequest) { r.Pet = "" },
		"bad date":       func(r *models.BookingRequest) { r.Date = "01/06/2024" },
		"bad time":       func(r *models.BookingRequest) { r.Time = "25:00" },
		"negative price": func(r *models.BookingRequest) { r.Services[0].Price = -1 },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			req := s.request()
			mutate(&req)
			_, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
			s.True(apperr.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
	s.Zero(s.bookings.Count())
}

func (s *BookingServiceSuite) TestSnapshotIsIndependentOfCaller() {
	req := s.request()
	resp, err := s.svc.CreateBooking(s.ctx, s.owner.ID, req)
	s.Require().NoError(err)

	req.Services[0].Price = 999
	stored, err := s.bookings.GetByID(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal(75.0, stored.Services[0].Price)
}

func (s *BookingServiceSuite) TestListings() {
	_, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	req := s.request()
	req.Pet = s.others.ID
	req.Time = "11:00"
	_, err = s.svc.CreateBooking(s.ctx, s.stray.ID, req)
	s.Require().NoError(err)

	mine, err := s.svc.ListCustomerBookings(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("Rex", mine[0].Pet.Name)
	s.Nil(mine[0].Customer)

	all, err := s.svc.ListAllBookings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("ada@example.com", all[0].Customer.Email)
	s.Equal("bob@example.com", all[1].Customer.Email)
}

func (s *BookingServiceSuite) TestUpdateStatus() {
	created, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	_, err = s.svc.UpdateStatus(s.ctx, created.ID, "archived")
	s.True(apperr.Is(err, apperr.ErrValidation))

	updated, err := s.svc.UpdateStatus(s.ctx, created.ID, models.BookingStatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.BookingStatusCompleted, updated.Status)

	_, err = s.svc.UpdateStatus(s.ctx, "nope", models.BookingStatusCompleted)
	s.True(apperr.Is(err, apperr.ErrNotFound))
}

func (s *BookingServiceSuite) TestCancelRules() {
	created, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	_, err = s.svc.CancelBooking(s.ctx, s.stray.ID, created.ID)
	s.True(apperr.Is(err, apperr.ErrNotFound))

	_, err = s.svc.CancelBooking(s.ctx, s.owner.ID, created.ID)
	s.Require().NoError(err)

	_, err = s.svc.CancelBooking(s.ctx, s.owner.ID, created.ID)
	s.True(apperr.Is(err, apperr.ErrValidation))
}

func (s *BookingServiceSuite) TestDeleteBooking() {
	created, err := s.svc.CreateBooking(s.ctx, s.owner.ID, s.request())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteBooking(s.ctx, created.ID))
	s.Zero(s.bookings.Count())
	s.True(apperr.Is(s.svc.DeleteBooking(s.ctx, created.ID), apperr.ErrNotFound))
}

func TestAppointmentTime(t *testing.T) {
	at, err := AppointmentTime("2024-06-01", "09:30", time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), at)

	_, err = AppointmentTime("2024-13-01", "09:30", time.UTC)
	require.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestCanonicalSlot(t *testing.T) {
	date, clock, err := CanonicalSlot("2024-06-01", "9:30")
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", date)
	require.Equal(t, "09:30", clock)

	_, _, err = CanonicalSlot("2024-06-01", "9.30")
	require.True(t, apperr.Is(err, apperr.ErrValidation))
}
