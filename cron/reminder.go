package cron

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	bookingRepo "okclinic/database/repository/booking"
	petRepo "okclinic/database/repository/pet"
	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/services/notification"
	"okclinic/services/tasks"
	"okclinic/utils"
	"okclinic/utils/apperr"
	"okclinic/utils/clock"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	DefaultReminderInterval = 5 * time.Minute
	DefaultReminderLeadTime = 12 * time.Hour
)

// ErrSweepInProgress is returned by SweepOnce while another sweep is running.
var ErrSweepInProgress = errors.New("reminder sweep already in progress")

// SweeperConfig tunes a ReminderSweeper. Zero values take the defaults.
type SweeperConfig struct {
	Interval   time.Duration
	LeadTime   time.Duration
	ClinicName string
	Location   *time.Location
	Clock      clock.Clock
	Logger     *zap.Logger
}

// SweepResult counts what one sweep did.
type SweepResult struct {
	Due     int // bookings selected in the window
	Sent    int // reminders dispatched and flagged
	Skipped int // no deliverable address
	Failed  int // dispatch or flag persistence failed
}

// ReminderSweeper notifies customers of appointments inside the lead window,
// once per booking.
type ReminderSweeper struct {
	bookings bookingRepo.BookingRepository
	users    userRepo.UserRepository
	pets     petRepo.PetRepository
	notifier notification.Notifier

	interval   time.Duration
	lead       time.Duration
	clinicName string
	loc        *time.Location
	clock      clock.Clock
	logger     *zap.Logger

	sweeping atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReminderSweeper(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	pets petRepo.PetRepository,
	notifier notification.Notifier,
	cfg SweeperConfig,
) *ReminderSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReminderInterval
	}
	if cfg.LeadTime <= 0 {
		cfg.LeadTime = DefaultReminderLeadTime
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.GetLogger()
	}
	return &ReminderSweeper{
		bookings:   bookings,
		users:      users,
		pets:       pets,
		notifier:   notifier,
		interval:   cfg.Interval,
		lead:       cfg.LeadTime,
		clinicName: cfg.ClinicName,
		loc:        cfg.Location,
		clock:      cfg.Clock,
		logger:     cfg.Logger.Named("reminders"),
	}
}

// Start runs a sweep every interval until ctx is cancelled or Stop is called.
// Calling Start on a running sweeper is a no-op.
func (s *ReminderSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	s.logger.Info("Reminder sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("leadTime", s.lead))
}

// Stop halts the ticker and waits for an in-flight sweep to return.
func (s *ReminderSweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Reminder sweeper stopped")
}

func (s *ReminderSweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ReminderSweeper) tick(ctx context.Context) {
	res, err := s.SweepOnce(ctx)
	switch {
	case errors.Is(err, ErrSweepInProgress):
		s.logger.Warn("Previous reminder sweep still running; skipping tick")
	case err != nil && ctx.Err() == nil:
		s.logger.Error("Reminder sweep failed", zap.Error(err))
	case res.Due > 0:
		s.logger.Info("Reminder sweep finished",
			zap.Int("due", res.Due),
			zap.Int("sent", res.Sent),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed))
	}
}

// SweepOnce selects upcoming, unreminded bookings whose appointment lies in
// [now, now+lead] and dispatches one reminder for each. A booking is flagged
// only after its reminder was sent, so failures are retried on a later sweep.
func (s *ReminderSweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	if !s.sweeping.CompareAndSwap(false, true) {
		return res, ErrSweepInProgress
	}
	defer s.sweeping.Store(false)

	now := s.clock.Now()
	due, err := s.bookings.Find(ctx, bookingRepo.DueReminderFilter(now, now.Add(s.lead)))
	if err != nil {
		return res, errors.Wrap(err, "select due bookings")
	}
	res.Due = len(due)

	for i := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		switch err := s.remind(ctx, &due[i]); {
		case err == nil:
			res.Sent++
		case errors.Is(err, errNoRecipient):
			res.Skipped++
			s.logger.Warn("Reminder skipped: customer has no email",
				zap.String("bookingID", due[i].ID),
				zap.String("customerID", due[i].CustomerID))
		default:
			res.Failed++
			s.logger.Error("Reminder failed",
				zap.String("bookingID", due[i].ID),
				zap.Error(err))
		}
	}
	return res, nil
}

var errNoRecipient = errors.New("no recipient address")

// remind handles one booking. Panics from the notifier are contained here
// so one bad booking cannot end the sweep.
func (s *ReminderSweeper) remind(ctx context.Context, b *models.Booking) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Dispatch(fmt.Errorf("panic: %v", r), "notifier panicked")
		}
	}()

	customer, err := s.users.GetByID(ctx, b.CustomerID)
	if err != nil {
		if apperr.Is(err, apperr.ErrNotFound) {
			return errNoRecipient
		}
		return errors.Wrap(err, "resolve customer")
	}
	if customer.Email == "" {
		return errNoRecipient
	}

	var petName string
	if pet, err := s.pets.GetByID(ctx, b.PetID); err == nil {
		petName = pet.Name
	}

	payload := tasks.NewReminderPayload(*b, customer.Email, petName, s.clinicName, s.loc)
	if err := s.notifier.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		if !apperr.Is(err, apperr.ErrDispatch) {
			err = apperr.Dispatch(err, "send reminder")
		}
		return err
	}
	if err := s.bookings.MarkReminderSent(ctx, b.ID); err != nil {
		// The reminder went out; the next sweep may send it again.
		return errors.Wrap(err, "persist reminder flag")
	}
	s.logger.Debug("Reminder sent", zap.String("bookingID", b.ID), zap.String("to", payload.To))
	return nil
}
