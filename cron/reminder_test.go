package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"okclinic/database/repository/memory"
	"okclinic/models"
	"okclinic/utils/clock"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type sentMessage struct {
	To, Subject, Body string
}

// fakeNotifier records sends and fails for addresses listed in failFor.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []sentMessage
	failFor  map[string]bool
	panicFor map[string]bool
	block    chan struct{}
}

func (n *fakeNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.block != nil {
		<-n.block
	}
	if n.panicFor[to] {
		panic("smtp exploded")
	}
	if n.failFor[to] {
		return errors.New("connection refused")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{to, subject, body})
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type SweeperSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	clock    *clock.MockClock
	bookings *memory.BookingStore
	users    *memory.UserStore
	pets     *memory.PetStore
	notifier *fakeNotifier
	sweeper  *ReminderSweeper

	customer *models.User
	pet      *models.Pet
	slot     int
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.bookings = memory.NewBookingStore()
	s.users = memory.NewUserStore()
	s.pets = memory.NewPetStore()
	s.notifier = &fakeNotifier{failFor: map[string]bool{}, panicFor: map[string]bool{}}
	s.slot = 0

	s.customer = s.addCustomer("ada@example.com")
	s.pet = &models.Pet{OwnerID: s.customer.ID, Name: "Rex"}
	s.Require().NoError(s.pets.Create(s.ctx, s.pet))

	s.sweeper = NewReminderSweeper(s.bookings, s.users, s.pets, s.notifier, SweeperConfig{
		LeadTime:   12 * time.Hour,
		ClinicName: "OK Clinic",
		Clock:      s.clock,
		Logger:     zap.NewNop(),
	})
}

func (s *SweeperSuite) addCustomer(email string) *models.User {
	u := &models.User{Name: "Customer", Email: email, Role: models.RoleCustomer}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

// addBooking stores an upcoming booking at now+offset in a slot of its own.
func (s *SweeperSuite) addBooking(customerID string, offset time.Duration) *models.Booking {
	s.slot++
	at := s.now.Add(offset)
	b := &models.Booking{
		CustomerID:    customerID,
		PetID:         s.pet.ID,
		Date:          at.Format("2006-01-02"),
		Time:          time.Date(0, 1, 1, 0, s.slot, 0, 0, time.UTC).Format("15:04"),
		AppointmentAt: at,
		Status:        models.BookingStatusUpcoming,
	}
	s.Require().NoError(s.bookings.Create(s.ctx, b))
	return b
}

func (s *SweeperSuite) reminded(id string) bool {
	b, err := s.bookings.GetByID(s.ctx, id)
	s.Require().NoError(err)
	return b.ReminderSent
}

func (s *SweeperSuite) TestSendsReminderAndFlagsBooking() {
	b := s.addBooking(s.customer.ID, 11*time.Hour)

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepResult{Due: 1, Sent: 1}, res)
	s.True(s.reminded(b.ID))

	s.Require().Len(s.notifier.sent, 1)
	msg := s.notifier.sent[0]
	s.Equal("ada@example.com", msg.To)
	s.Equal("Upcoming Appointment Reminder - OK Clinic", msg.Subject)
	s.Equal("This is a reminder that Rex has an appointment on Sat Jun 1, 2024 at 7:00 PM.", msg.Body)
}

func (s *SweeperSuite) TestSecondSweepSendsNothing() {
	s.addBooking(s.customer.ID, 2*time.Hour)
	s.addBooking(s.customer.ID, 6*time.Hour)

	_, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.notifier.count())

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(res.Due)
	s.Equal(2, s.notifier.count())
}

func (s *SweeperSuite) TestWindow() {
	inside := s.addBooking(s.customer.ID, 11*time.Hour)
	beyond := s.addBooking(s.customer.ID, 13*time.Hour)
	past := s.addBooking(s.customer.ID, -1*time.Hour)
	atNow := s.addBooking(s.customer.ID, 0)
	atEnd := s.addBooking(s.customer.ID, 12*time.Hour)

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, res.Sent)

	s.True(s.reminded(inside.ID))
	s.True(s.reminded(atNow.ID))
	s.True(s.reminded(atEnd.ID))
	s.False(s.reminded(beyond.ID))
	s.False(s.reminded(past.ID))
}

func (s *SweeperSuite) TestOnlyUpcomingBookingsAreReminded() {
	done := s.addBooking(s.customer.ID, time.Hour)
	_, err := s.bookings.UpdateStatus(s.ctx, done.ID, models.BookingStatusCompleted)
	s.Require().NoError(err)
	gone := s.addBooking(s.customer.ID, 2*time.Hour)
	_, err = s.bookings.UpdateStatus(s.ctx, gone.ID, models.BookingStatusCancelled)
	s.Require().NoError(err)

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(res.Due)
	s.Zero(s.notifier.count())
}

func (s *SweeperSuite) TestLaterBookingEntersWindowAsTimePasses() {
	b := s.addBooking(s.customer.ID, 13*time.Hour)

	_, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.False(s.reminded(b.ID))

	s.clock.Add(2 * time.Hour)
	_, err = s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.True(s.reminded(b.ID))
}

func (s *SweeperSuite) TestFailedDispatchIsIsolatedAndRetried() {
	broken := s.addCustomer("broken@example.com")
	panicky := s.addCustomer("panic@example.com")
	s.notifier.failFor["broken@example.com"] = true
	s.notifier.panicFor["panic@example.com"] = true

	first := s.addBooking(broken.ID, time.Hour)
	second := s.addBooking(panicky.ID, 2*time.Hour)
	third := s.addBooking(s.customer.ID, 3*time.Hour)

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(SweepResult{Due: 3, Sent: 1, Failed: 2}, res)
	s.False(s.reminded(first.ID))
	s.False(s.reminded(second.ID))
	s.True(s.reminded(third.ID))

	delete(s.notifier.failFor, "broken@example.com")
	res, err = s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, res.Sent)
	s.True(s.reminded(first.ID))
}

func (s *SweeperSuite) TestMissingEmailIsSkipped() {
	nobody := s.addCustomer("")
	b := s.addBooking(nobody.ID, time.Hour)
	orphan := s.addBooking("deleted-user", 2*time.Hour)

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, res.Skipped)
	s.False(s.reminded(b.ID))
	s.False(s.reminded(orphan.ID))
	s.Zero(s.notifier.count())
}

func (s *SweeperSuite) TestFlagPersistFailureCountsAsFailed() {
	b := s.addBooking(s.customer.ID, time.Hour)
	s.bookings.FailMarkReminder = map[string]error{b.ID: errors.New("write failed")}

	res, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, res.Failed)
	s.Equal(1, s.notifier.count())
	s.False(s.reminded(b.ID))
}

func (s *SweeperSuite) TestMissingPetFallsBackToGenericName() {
	b := s.addBooking(s.customer.ID, time.Hour)
	s.Require().NoError(s.pets.Delete(s.ctx, b.PetID))

	_, err := s.sweeper.SweepOnce(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(s.notifier.sent, 1)
	s.Contains(s.notifier.sent[0].Body, "your pet")
}

func TestSweepsDoNotOverlap(t *testing.T) {
	ctx := context.Background()
	bookings := memory.NewBookingStore()
	users := memory.NewUserStore()
	pets := memory.NewPetStore()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	u := &models.User{Email: "ada@example.com"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		CustomerID: u.ID, Date: "2024-06-01", Time: "09:00",
		AppointmentAt: now.Add(time.Hour), Status: models.BookingStatusUpcoming,
	}))

	notifier := &fakeNotifier{block: make(chan struct{})}
	sweeper := NewReminderSweeper(bookings, users, pets, notifier, SweeperConfig{
		Clock: clock.NewMockClock(now), Logger: zap.NewNop(),
	})

	done := make(chan SweepResult)
	go func() {
		res, _ := sweeper.SweepOnce(ctx)
		done <- res
	}()

	require.Eventually(t, sweeper.sweeping.Load, time.Second, time.Millisecond)
	_, err := sweeper.SweepOnce(ctx)
	assert.ErrorIs(t, err, ErrSweepInProgress)

	close(notifier.block)
	assert.Equal(t, 1, (<-done).Sent)
}

func TestStartAndStop(t *testing.T) {
	ctx := context.Background()
	bookings := memory.NewBookingStore()
	users := memory.NewUserStore()
	now := time.Now()

	u := &models.User{Email: "ada@example.com"}
	require.NoError(t, users.Create(ctx, u))
	b := &models.Booking{
		CustomerID: u.ID, Date: "2024-06-01", Time: "09:00",
		AppointmentAt: now.Add(time.Hour), Status: models.BookingStatusUpcoming,
	}
	require.NoError(t, bookings.Create(ctx, b))

	notifier := &fakeNotifier{}
	sweeper := NewReminderSweeper(bookings, users, memory.NewPetStore(), notifier, SweeperConfig{
		Interval: 10 * time.Millisecond,
		Logger:   zap.NewNop(),
	})

	sweeper.Start(ctx)
	sweeper.Start(ctx)
	require.Eventually(t, func() bool { return notifier.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	sweeper.Stop()
	sweeper.Stop()

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.ReminderSent)
	assert.Equal(t, 1, notifier.count())
}
